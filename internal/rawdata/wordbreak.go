package rawdata

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"voxkit/internal/diag"
)

// WhitespaceBreakingFile is the one file every word-breaker data folder must
// contain; without it the runtime cannot segment anything.
const WhitespaceBreakingFile = "whitespacebreakingchar.txt"

// Optional word-breaker files.
const (
	mainWordsFile = "mainwords.txt"
	particlesFile = "particles.txt"
)

// WordBreakerData is the parsed word-breaking dictionary folder.
type WordBreakerData struct {
	// BreakingChars holds one "0xNNNN" codepoint entry per row; the runtime
	// decodes them, the build treats them as opaque table rows.
	BreakingChars []string
	MainWords     []string
	Particles     []string
}

// LoadWordBreaker loads a word-breaker data folder. The folder itself and the
// whitespace breaking char file are required; main word and particle lists
// are optional.
func LoadWordBreaker(path string) (any, *diag.Bag, error) {
	bag := diag.NewBag()

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			bag.Add(diag.MustFix(diag.DataFolderNotFound, NameWordBreaker, "word breaker data folder %q not found", path))
			return nil, bag, nil
		}
		return nil, bag, err
	}
	if !info.IsDir() {
		bag.Add(diag.MustFix(diag.DataFolderNotFound, NameWordBreaker, "word breaker data path %q is not a folder", path))
		return nil, bag, nil
	}

	wsPath := filepath.Join(path, WhitespaceBreakingFile)
	if _, err := os.Stat(wsPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			bag.Add(diag.MustFix(diag.BasicDataNotFound, NameWordBreaker, "required file %q missing from word breaker data", WhitespaceBreakingFile))
			return nil, bag, nil
		}
		return nil, bag, err
	}
	breaking, err := readTextLines(wsPath)
	if err != nil {
		return nil, bag, err
	}
	if len(breaking) == 0 {
		bag.Add(diag.MustFix(diag.BasicDataNotFound, NameWordBreaker, "%q contains no breaking characters", WhitespaceBreakingFile))
		return nil, bag, nil
	}

	data := &WordBreakerData{BreakingChars: breaking}
	data.MainWords, err = readOptionalLines(filepath.Join(path, mainWordsFile))
	if err != nil {
		return nil, bag, err
	}
	data.Particles, err = readOptionalLines(filepath.Join(path, particlesFile))
	if err != nil {
		return nil, bag, err
	}
	return data, bag, nil
}

func readOptionalLines(path string) ([]string, error) {
	lines, err := readTextLines(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return lines, err
}
