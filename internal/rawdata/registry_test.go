package rawdata

import (
	"os"
	"path/filepath"
	"testing"

	"voxkit/internal/diag"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestGetWithoutDataRoot(t *testing.T) {
	r := NewRegistry()
	obj, bag, err := r.Get(NamePhoneSet)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if obj != nil {
		t.Fatal("expected nil object without a data root")
	}
	if !hasCode(bag, diag.PathNotInitialized) {
		t.Fatalf("want PathNotInitialized, got:\n%s", diag.FormatGolden(bag))
	}
}

func TestAttemptOnce(t *testing.T) {
	root := t.TempDir()
	r := NewRegistry()
	r.SetDataRoot(root)

	// First access: file does not exist.
	_, bag, err := r.Get(NameCharTable)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hasCode(bag, diag.RawDataNotFound) {
		t.Fatalf("first access: want RawDataNotFound, got:\n%s", diag.FormatGolden(bag))
	}

	// Creating the file afterwards must not help: load is attempted once.
	writeFile(t, filepath.Join(root, "chartable.txt"), "a\tey\t1\n")
	_, bag2, err := r.Get(NameCharTable)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hasCode(bag2, diag.RawDataNotFound) {
		t.Fatal("second access must not re-probe the file system")
	}
	if !hasCode(bag2, diag.RawDataError) {
		t.Fatalf("second access: want RawDataError, got:\n%s", diag.FormatGolden(bag2))
	}
}

func TestGetCachesLoadedObject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "chartable.txt"), "a\tey\t1\nb\tbi\t1\n")
	r := NewRegistry()
	r.SetDataRoot(root)

	first, bag, err := r.Get(NameCharTable)
	if err != nil || bag.HasMustFix() {
		t.Fatalf("first Get failed: err=%v bag=%s", err, diag.FormatGolden(bag))
	}
	second, _, err := r.Get(NameCharTable)
	if err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if first != second {
		t.Fatal("cached object identity changed between accesses")
	}
}

func TestLanguageTemplating(t *testing.T) {
	root := t.TempDir()
	r := NewRegistry()
	r.SetDataRoot(root)
	r.SetLanguage(LangZhCN)

	writeFile(t, filepath.Join(root, "tone", "zh-CN.tone.txt"), "ma*\t3\n")
	obj, bag, err := r.Get(NameToneRules)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if obj == nil {
		t.Fatalf("tone rules not loaded: %s", diag.FormatGolden(bag))
	}
	rules := obj.(*ToneRules)
	if len(rules.Rules) != 1 || rules.Rules[0].Pattern != "ma*" || rules.Rules[0].Tone != 3 {
		t.Fatalf("unexpected rules: %+v", rules.Rules)
	}
}

func TestOverridePathWinsOverRoot(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()
	writeFile(t, filepath.Join(other, "special.txt"), "a\tey\t1\n")

	r := NewRegistry()
	if !r.OverridePath(NameCharTable, filepath.Join(other, "special.txt")) {
		t.Fatal("OverridePath returned false")
	}
	r.SetDataRoot(root)
	r.SetLanguage(LangEnUS)

	obj, bag, err := r.Get(NameCharTable)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if obj == nil {
		t.Fatalf("overridden path not used: %s", diag.FormatGolden(bag))
	}
}

func TestUnknownName(t *testing.T) {
	r := NewRegistry()
	obj, bag, err := r.Get("NoSuchData")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if obj != nil || !bag.HasMustFix() {
		t.Fatal("unknown raw data name must fail with MustFix")
	}
}

func hasCode(b *diag.Bag, code diag.Code) bool {
	for _, d := range b.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}
