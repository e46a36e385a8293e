package compiler

import (
	"bytes"

	"voxkit/internal/binenc"
	"voxkit/internal/diag"
	"voxkit/internal/rawdata"
)

// modelLayoutVersion versions the blob wrapper, not the weights inside it.
const modelLayoutVersion = 1

// compileModelBlob builds the encoder for a pretrained model module. The
// weights pass through untouched behind a self-describing header:
//
//	u32 layout version, u32 blob size, blob bytes, pad to 4.
func compileModelBlob(rawName string) CompileFn {
	return func(_ *Session, in Inputs) ([]byte, *diag.Bag, error) {
		bag := diag.NewBag()
		blob := in.Raw[rawName].(*rawdata.ModelBlob)

		var buf bytes.Buffer
		w := binenc.NewRecordWriter(&buf)
		w.PutUint32(modelLayoutVersion)
		w.PutCount(len(blob.Bytes))
		buf.Write(blob.Bytes)
		binenc.Pad4(&buf)
		return buf.Bytes(), bag, nil
	}
}
