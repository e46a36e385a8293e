package rawdata

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"voxkit/internal/diag"
)

// modelBlobFile is the pretrained model payload inside a model directory.
const modelBlobFile = "model.bin"

// ModelBlob is a pretrained statistical model loaded from a blob directory.
// The build never interprets the weights; it validates presence and repacks
// the bytes behind a self-describing header.
type ModelBlob struct {
	Dir   string
	Bytes []byte
}

// LoadModelDir loads a pretrained model blob directory.
func LoadModelDir(path string) (any, *diag.Bag, error) {
	bag := diag.NewBag()
	name := filepath.Base(path)

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			bag.Add(diag.MustFix(diag.DataFolderNotFound, name, "model directory %q not found", path))
			return nil, bag, nil
		}
		return nil, bag, err
	}
	if !info.IsDir() {
		bag.Add(diag.MustFix(diag.DataFolderNotFound, name, "model path %q is not a directory", path))
		return nil, bag, nil
	}

	blobPath := filepath.Join(path, modelBlobFile)
	data, err := os.ReadFile(blobPath) // #nosec G304 -- path comes from the resolved registry
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			bag.Add(diag.MustFix(diag.BasicDataNotFound, name, "model blob %q missing from %q", modelBlobFile, path))
			return nil, bag, nil
		}
		return nil, bag, err
	}
	if len(data) == 0 {
		bag.Add(diag.MustFix(diag.InvalidRawData, name, "model blob %q is empty", blobPath))
		return nil, bag, nil
	}
	return &ModelBlob{Dir: path, Bytes: data}, bag, nil
}

// SourceFile wraps a raw source consumed by an external legacy compiler; the
// build only needs its path and existence.
type SourceFile struct {
	Path string
}

// LoadSourceFile validates that the source exists and wraps its path.
func LoadSourceFile(path string) (any, *diag.Bag, error) {
	bag := diag.NewBag()
	info, err := os.Stat(path)
	if err != nil {
		return nil, bag, err
	}
	if info.IsDir() {
		bag.Add(diag.MustFix(diag.InvalidRawData, filepath.Base(path), "source %q is a directory, want a file", path))
		return nil, bag, nil
	}
	return &SourceFile{Path: path}, bag, nil
}
