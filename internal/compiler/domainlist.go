package compiler

import (
	"bytes"

	"voxkit/internal/binenc"
	"voxkit/internal/diag"
	"voxkit/internal/rawdata"
)

// compileDomainList encodes the specialized-domain name lookup:
//
//	u32 domain count, u32 trie size, trie over domain names.
//
// Domain ids are trie pattern ids, so first occurrence in the source list
// wins and repeated names collapse to one entry.
func compileDomainList(_ *Session, in Inputs) ([]byte, *diag.Bag, error) {
	bag := diag.NewBag()
	list := in.Raw[rawdata.NameDomainList].(*rawdata.DomainList)

	trie := binenc.BuildTrie(list.Domains)
	trieBytes := trie.Serialize()

	var buf bytes.Buffer
	w := binenc.NewRecordWriter(&buf)
	w.PutCount(trie.Count())
	w.PutCount(len(trieBytes))
	buf.Write(trieBytes)
	return buf.Bytes(), bag, nil
}
