package compiler

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"voxkit/internal/binenc"
	"voxkit/internal/container"
	"voxkit/internal/diag"
	"voxkit/internal/exttool"
	"voxkit/internal/rawdata"
)

const phoneSetXML = `<phoneSet lang="en-US">
  <phone name="AA" id="1" feature="Vowel"/>
  <phone name="P" id="2" feature="Consonant"/>
</phoneSet>`

const posSetXML = `<posSet lang="en-US">
  <pos name="noun" id="10"/>
  <pos name="verb" id="20"/>
</posSet>`

const lexiconSchemaXML = `<lexiconSchema>
  <category name="Name" pos="noun"/>
  <category name="Action" pos="verb"/>
</lexiconSchema>`

func newTestSession(t *testing.T, runner exttool.Runner, files map[string]string) *Session {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	reg := rawdata.NewRegistry()
	reg.SetLanguage(rawdata.LangEnUS)
	reg.SetDataRoot(root)
	if runner == nil {
		runner = &exttool.Canned{}
	}
	return NewSession(reg, runner)
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func u32(t *testing.T, data []byte, off int) uint32 {
	t.Helper()
	if off+4 > len(data) {
		t.Fatalf("payload too short: want u32 at %d, have %d bytes", off, len(data))
	}
	return binary.LittleEndian.Uint32(data[off : off+4])
}

func u16(t *testing.T, data []byte, off int) uint16 {
	t.Helper()
	if off+2 > len(data) {
		t.Fatalf("payload too short: want u16 at %d, have %d bytes", off, len(data))
	}
	return binary.LittleEndian.Uint16(data[off : off+2])
}

func TestCompilePhoneSetLayout(t *testing.T) {
	s := newTestSession(t, nil, map[string]string{"phoneset.xml": phoneSetXML})
	out := s.BuildStored(container.ModPhoneSet, true)
	if out.Err != nil {
		t.Fatal(out.Err)
	}
	if out.Bag.Len() != 0 {
		t.Fatalf("want empty bag, got %d entries", out.Bag.Len())
	}
	data := out.Data
	if got := u32(t, data, 0); got != phoneRecordSize {
		t.Fatalf("record size field = %d, want %d", got, phoneRecordSize)
	}
	if got := u32(t, data, 4); got != 2 {
		t.Fatalf("count field = %d, want 2", got)
	}
	if want := 8 + 2*phoneRecordSize; len(data) != want {
		t.Fatalf("payload length = %d, want %d", len(data), want)
	}

	// Insertion order is preserved: AA first even though ids are unsorted in
	// general. Name field is UTF-16LE, NUL-padded.
	if data[8] != 'A' || data[9] != 0 || data[10] != 'A' || data[11] != 0 || data[12] != 0 {
		t.Fatalf("first name field = % x, want UTF-16LE \"AA\"", data[8:24])
	}
	if got := u16(t, data, 24); got != 1 {
		t.Fatalf("first phone id = %d, want 1", got)
	}
	if data[26] != 1 {
		t.Fatalf("first feature class = %d, want 1 (vowel)", data[26])
	}
	second := 8 + phoneRecordSize
	if data[second] != 'P' || data[second+1] != 0 {
		t.Fatalf("second name field = % x, want UTF-16LE \"P\"", data[second:second+16])
	}
	if got := u16(t, data, second+16); got != 2 {
		t.Fatalf("second phone id = %d, want 2", got)
	}
	if data[second+18] != 2 {
		t.Fatalf("second feature class = %d, want 2 (consonant)", data[second+18])
	}
}

func TestPhoneSetDuplicateKeyPolicy(t *testing.T) {
	const dupXML = `<phoneSet lang="en-US">
  <phone name="AA" id="1" feature="Vowel"/>
  <phone name="AA" id="2" feature="Vowel"/>
</phoneSet>`

	t.Run("strict blocks", func(t *testing.T) {
		s := newTestSession(t, nil, map[string]string{"phoneset.xml": dupXML})
		out := s.BuildStored(container.ModPhoneSet, true)
		if out.Err != nil {
			t.Fatal(out.Err)
		}
		if out.Data != nil {
			t.Fatal("duplicate key with strict validation must not produce bytes")
		}
		if !out.Bag.HasMustFix() || !hasCode(out.Bag, diag.DuplicateItemKey) {
			t.Fatalf("want DuplicateItemKey MustFix, got %+v", out.Bag.Items())
		}
	})

	t.Run("relaxed downgrades", func(t *testing.T) {
		s := newTestSession(t, nil, map[string]string{"phoneset.xml": dupXML})
		out := s.BuildStored(container.ModPhoneSet, false)
		if out.Err != nil {
			t.Fatal(out.Err)
		}
		if out.Data == nil {
			t.Fatal("relaxed validation must still produce bytes")
		}
		if out.Bag.HasMustFix() {
			t.Fatalf("relaxed validation must not keep MustFix: %+v", out.Bag.Items())
		}
		if !out.Bag.HasWarnings() || !hasCode(out.Bag, diag.DuplicateItemKey) {
			t.Fatalf("want downgraded DuplicateItemKey warning, got %+v", out.Bag.Items())
		}
	})
}

func TestDependencyFailureWrapping(t *testing.T) {
	// No phoneset.xml on disk: the raw dependency fails, the recipe never runs.
	s := newTestSession(t, nil, nil)
	out := s.BuildStored(container.ModPhoneSet, true)
	if out.Err != nil {
		t.Fatal(out.Err)
	}
	if out.Data != nil {
		t.Fatal("want nil payload on dependency failure")
	}
	if !hasCode(out.Bag, diag.DependenciesNotValid) {
		t.Fatalf("want DependenciesNotValid, got %+v", out.Bag.Items())
	}
	// The underlying MustFix is preserved as an informational log entry.
	if !hasCode(out.Bag, diag.CompilingLogWithError) {
		t.Fatalf("want re-tagged CompilingLogWithError, got %+v", out.Bag.Items())
	}
	for _, d := range out.Bag.Items() {
		if d.Code == diag.CompilingLogWithError && d.Severity != diag.SevInfo {
			t.Fatalf("re-tagged entry must be Info, got %v", d.Severity)
		}
	}
}

func TestBuildStoredOncePerSession(t *testing.T) {
	s := newTestSession(t, nil, map[string]string{"phoneset.xml": phoneSetXML})
	first := s.BuildStored(container.ModPhoneSet, true)
	second := s.BuildStored(container.ModPhoneSet, true)
	if first != second {
		t.Fatal("want the stored output on repeat builds, got a recompile")
	}
}

func TestFirstValidationPolicyWins(t *testing.T) {
	const dupXML = `<phoneSet lang="en-US">
  <phone name="AA" id="1" feature="Vowel"/>
  <phone name="AA" id="2" feature="Vowel"/>
</phoneSet>`
	s := newTestSession(t, nil, map[string]string{"phoneset.xml": dupXML})
	relaxed := s.BuildStored(container.ModPhoneSet, false)
	if relaxed.Data == nil {
		t.Fatal("relaxed build must produce bytes")
	}
	// A later strict request sees the stored relaxed output; the module is
	// compiled at most once per session.
	strict := s.BuildStored(container.ModPhoneSet, true)
	if strict != relaxed {
		t.Fatal("second build must return the session's stored output")
	}
}

func TestCompilePosTaggerPosJoinsModuleDep(t *testing.T) {
	s := newTestSession(t, nil, map[string]string{
		"posset.xml":         posSetXML,
		"lexicon.schema.xml": lexiconSchemaXML,
	})
	out := s.BuildStored(container.ModPosTaggerPos, true)
	if out.Err != nil {
		t.Fatal(out.Err)
	}
	if out.Data == nil {
		t.Fatalf("want payload, got diagnostics %+v", out.Bag.Items())
	}

	posOut := s.Output(container.ModPosSet)
	if posOut == nil || posOut.Data == nil {
		t.Fatal("module dependency must be compiled and stored in the session")
	}

	data := out.Data
	if got := u32(t, data, 0); got != posTaggerRecordSize {
		t.Fatalf("record size field = %d, want %d", got, posTaggerRecordSize)
	}
	if got := u32(t, data, 4); got != 2 {
		t.Fatalf("record count = %d, want 2", got)
	}
	if got := u32(t, data, 8); got != uint32(len(posOut.Data)) {
		t.Fatalf("POS table stamp = %d, want %d", got, len(posOut.Data))
	}
	poolLen := int(u32(t, data, 12))
	// "Name" + NUL, "Action" + NUL in UTF-16LE.
	if poolLen != (4+1+6+1)*2 {
		t.Fatalf("pool size = %d, want 24", poolLen)
	}
	records := 16 + poolLen
	records += (4 - records%4) % 4
	if got := u16(t, data, records+4); got != 10 {
		t.Fatalf("category %q POS id = %d, want 10", "Name", got)
	}
	if got := u16(t, data, records+posTaggerRecordSize+4); got != 20 {
		t.Fatalf("category %q POS id = %d, want 20", "Action", got)
	}
}

func TestPosTaggerUnknownPosTag(t *testing.T) {
	const badSchema = `<lexiconSchema>
  <category name="Name" pos="adjective"/>
</lexiconSchema>`
	s := newTestSession(t, nil, map[string]string{
		"posset.xml":         posSetXML,
		"lexicon.schema.xml": badSchema,
	})
	out := s.BuildStored(container.ModPosTaggerPos, true)
	if out.Data != nil {
		t.Fatal("unknown POS tag must block a strict compile")
	}
	if !hasCode(out.Bag, diag.InvalidModuleData) {
		t.Fatalf("want InvalidModuleData, got %+v", out.Bag.Items())
	}
}

func TestCompileToneTableLookup(t *testing.T) {
	s := newTestSession(t, nil, map[string]string{
		"tone/en-US.tone.txt": "ba*\t3\nma\t2\n",
	})
	out := s.BuildStored(container.ModToneTable, true)
	if out.Err != nil {
		t.Fatal(out.Err)
	}
	if out.Data == nil {
		t.Fatalf("want payload, got diagnostics %+v", out.Bag.Items())
	}
	data := out.Data
	if got := u32(t, data, 0); got != 2 {
		t.Fatalf("value width = %d, want 2", got)
	}
	count := u32(t, data, 4)
	if count != 2 {
		t.Fatalf("pattern count = %d, want 2", count)
	}
	trieSize := int(u32(t, data, 8))
	trie := data[12 : 12+trieSize]
	values := 12 + trieSize

	for _, tc := range []struct {
		pattern string
		tone    uint16
	}{
		{"ba*", 3},
		{"ma", 2},
	} {
		id, ok := binenc.Lookup(trie, tc.pattern)
		if !ok {
			t.Fatalf("pattern %q not found in serialized trie", tc.pattern)
		}
		if got := u16(t, data, values+2*int(id)); got != tc.tone {
			t.Fatalf("tone of %q = %d, want %d", tc.pattern, got, tc.tone)
		}
	}
	if _, ok := binenc.Lookup(trie, "zz"); ok {
		t.Fatal("unknown pattern must not resolve")
	}
}

func TestCompileAllConcurrent(t *testing.T) {
	s := newTestSession(t, nil, map[string]string{
		"phoneset.xml":   phoneSetXML,
		"posset.xml":     posSetXML,
		"unittable.txt":  "u_aa\t1\nu_p\t2\n",
		"domainlist.txt": "weather\nnavigation\n",
	})
	names := []string{
		container.ModPhoneSet,
		container.ModPosSet,
		container.ModUnitGenerator,
		container.ModDomainList,
	}
	outs, err := s.CompileAll(names, true, 2)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range names {
		out, ok := outs[name]
		if !ok || out.Data == nil {
			t.Fatalf("module %q missing from concurrent build", name)
		}
	}
}

func TestExternalToolRecipes(t *testing.T) {
	files := map[string]string{"lexicon.xml": "<lexicon/>"}

	t.Run("success keeps output and chatter", func(t *testing.T) {
		runner := &exttool.Canned{Results: map[string]exttool.Result{
			"lexcomp": {ExitCode: 0, Stdout: "parsed 2 entries\n", OutputBytes: []byte{1, 2, 3, 4}},
		}}
		s := newTestSession(t, runner, files)
		out := s.BuildStored(container.ModLexicon, true)
		if out.Err != nil {
			t.Fatal(out.Err)
		}
		if string(out.Data) != string([]byte{1, 2, 3, 4}) {
			t.Fatalf("payload = % x, want tool output bytes", out.Data)
		}
		if !hasCode(out.Bag, diag.CompilingLog) {
			t.Fatalf("want stdout preserved as CompilingLog, got %+v", out.Bag.Items())
		}
		if len(runner.Calls) != 1 || runner.Calls[0].Tool != "lexcomp" {
			t.Fatalf("calls = %+v, want one lexcomp invocation", runner.Calls)
		}
		if !strings.HasSuffix(runner.Calls[0].Args[0], "lexicon.xml") {
			t.Fatalf("tool arg = %q, want the lexicon source path", runner.Calls[0].Args[0])
		}
	})

	t.Run("missing tool", func(t *testing.T) {
		runner := &exttool.Canned{Missing: map[string]bool{"lexcomp": true}}
		s := newTestSession(t, runner, files)
		out := s.BuildStored(container.ModLexicon, true)
		if out.Err != nil {
			t.Fatal(out.Err)
		}
		if out.Data != nil {
			t.Fatal("missing tool must not produce a payload")
		}
		if !hasCode(out.Bag, diag.ToolNotFound) {
			t.Fatalf("want ToolNotFound, got %+v", out.Bag.Items())
		}
	})

	t.Run("nonzero exit", func(t *testing.T) {
		runner := &exttool.Canned{Results: map[string]exttool.Result{
			"lexcomp": {ExitCode: 2, Stderr: "bad entry on line 7\n"},
		}}
		s := newTestSession(t, runner, files)
		out := s.BuildStored(container.ModLexicon, true)
		if out.Data != nil {
			t.Fatal("failed tool must not produce a payload")
		}
		if !hasCode(out.Bag, diag.InvalidModuleData) {
			t.Fatalf("want InvalidModuleData, got %+v", out.Bag.Items())
		}
		if !hasCode(out.Bag, diag.CompilingLogWithError) {
			t.Fatalf("want stderr preserved as CompilingLogWithError, got %+v", out.Bag.Items())
		}
	})
}

func TestCompileWordBreaker(t *testing.T) {
	s := newTestSession(t, nil, map[string]string{
		"wordbreaker/whitespacebreakingchar.txt": "0x0020\n0x0009\n",
		"wordbreaker/mainwords.txt":              "hello\nworld\n",
	})
	out := s.BuildStored(container.ModWordBreaker, true)
	if out.Err != nil {
		t.Fatal(out.Err)
	}
	data := out.Data
	if got := u32(t, data, 0); got != 2 {
		t.Fatalf("breaking char count = %d, want 2", got)
	}
	if got := u32(t, data, 4); got != 2 {
		t.Fatalf("dictionary word count = %d, want 2", got)
	}
	if got := u32(t, data, 12); got != 0x20 {
		t.Fatalf("first breaking char = %#x, want 0x20", got)
	}
	trieSize := int(u32(t, data, 8))
	trie := data[20 : 20+trieSize]
	if _, ok := binenc.Lookup(trie, "hello"); !ok {
		t.Fatal("main word must be present in the dictionary trie")
	}
}
