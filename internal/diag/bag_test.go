package diag

import (
	"strings"
	"testing"
)

func TestSeverityOrdering(t *testing.T) {
	if !(SevInfo < SevWarning && SevWarning < SevMustFix) {
		t.Fatalf("severity lattice broken: info=%d warning=%d mustfix=%d", SevInfo, SevWarning, SevMustFix)
	}
}

func TestBagMergeNeverDrops(t *testing.T) {
	a := NewBag()
	a.Add(Warning(ZeroModuleData, "PhoneSet", "empty payload"))
	a.Add(Info(CompilingLog, "PhoneSet", "compiled"))

	b := NewBag()
	b.Add(MustFix(RawDataNotFound, "CharTable", "chartable.txt missing"))

	a.Merge(b)
	if a.Len() != 3 {
		t.Fatalf("Merge dropped entries: len=%d, want 3", a.Len())
	}
}

func TestMustFixMonotonicUnderMerge(t *testing.T) {
	x := NewBag()
	x.Add(MustFix(DependenciesNotValid, "PosTaggerPos", "dependency PosSet not valid"))

	cases := []*Bag{
		NewBag(),
		func() *Bag {
			b := NewBag()
			b.Add(Info(CompilingLog, "Lexicon", "log line"))
			return b
		}(),
		func() *Bag {
			b := NewBag()
			b.Add(Warning(NecessaryDataMissing, "UnitGenerator", "auto-compiling"))
			return b
		}(),
	}
	for i, y := range cases {
		y.Merge(x)
		if !y.HasMustFix() {
			t.Errorf("case %d: merged bag lost MustFix", i)
		}
	}
}

func TestDefaultSeverities(t *testing.T) {
	mustFix := []Code{
		ToolNotFound, RawDataNotFound, PathNotInitialized, InvalidModuleData,
		RawDataError, DependenciesNotValid, DuplicateItemKey, InvalidGuidString,
		DomainDataMissing, DataFolderNotFound, BasicDataNotFound,
	}
	for _, c := range mustFix {
		if c.DefaultSeverity() != SevMustFix {
			t.Errorf("%s: default severity = %s, want MUSTFIX", c.ID(), c.DefaultSeverity())
		}
	}
	warnings := []Code{
		ZeroModuleData, NecessaryDataMissing, SkipCombiningData,
		InvalidRawData, InvalidBinaryData, SaveBinaryFileFail,
	}
	for _, c := range warnings {
		if c.DefaultSeverity() != SevWarning {
			t.Errorf("%s: default severity = %s, want WARNING", c.ID(), c.DefaultSeverity())
		}
	}
	logs := []Code{CompilingLog, CompilingLogWithError, CompilingLogWithWarning, CompilingLogWithDataName}
	for _, c := range logs {
		if c.DefaultSeverity() != SevInfo {
			t.Errorf("%s: default severity = %s, want INFO", c.ID(), c.DefaultSeverity())
		}
	}
}

func TestDedupKeepsFirst(t *testing.T) {
	b := NewBag()
	b.Add(Warning(InvalidRawData, "ToneTable", "bad line 3"))
	b.Add(Warning(InvalidRawData, "ToneTable", "bad line 3"))
	b.Add(Warning(InvalidRawData, "ToneTable", "bad line 7"))
	b.Dedup()
	if b.Len() != 2 {
		t.Fatalf("Dedup: len=%d, want 2", b.Len())
	}
}

func TestFormatGoldenDeterministic(t *testing.T) {
	mk := func(order []Diagnostic) string {
		b := NewBag()
		for _, d := range order {
			b.Add(d)
		}
		return FormatGolden(b)
	}
	d1 := MustFix(RawDataNotFound, "PhoneSet", "phoneset.xml missing")
	d2 := Warning(ZeroModuleData, "CharTable", "empty payload")
	d3 := Info(CompilingLog, "CharTable", "0 records")

	first := mk([]Diagnostic{d1, d2, d3})
	second := mk([]Diagnostic{d3, d1, d2})
	if first != second {
		t.Fatalf("golden output depends on insertion order:\n%s\n----\n%s", first, second)
	}
	if !strings.Contains(first, "mustfix RAW2001 PhoneSet") {
		t.Fatalf("unexpected golden format:\n%s", first)
	}
}
