package structs

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// LocalFile is a file found under the folder being published.
type LocalFile struct {
	AbsolutePath string `json:"absolutePath" yaml:"absolutePath"`
	// RelativePath is relative to the published folder and always uses "/".
	RelativePath string `json:"relativePath" yaml:"relativePath"`
}

// NewLocalFile builds a LocalFile for absPath found under root.
func NewLocalFile(root string, absPath string) (LocalFile, error) {
	rel, err := filepath.Rel(root, absPath)
	if err != nil {
		return LocalFile{}, err
	}

	rel = filepath.ToSlash(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return LocalFile{}, fmt.Errorf("%s is not inside %s", absPath, root)
	}

	return LocalFile{
		AbsolutePath: absPath,
		RelativePath: rel,
	}, nil
}

// RemoteKey is the object key of the file under prefix. The prefix is used
// verbatim, so "site/" yields "site/css/app.css".
func (f LocalFile) RemoteKey(prefix string) string {
	return prefix + f.RelativePath
}

// Name is the base name of the file.
func (f LocalFile) Name() string {
	return path.Base(f.RelativePath)
}
