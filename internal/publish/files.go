package publish

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/Altinity/site-sync/structs"
	"github.com/rs/zerolog/log"
)

func validateFolder(folder string) error {
	if folder == "" {
		return &ValidationError{Err: ErrNoFolder}
	}

	fi, err := os.Stat(folder)
	if err != nil {
		return &ValidationError{Folder: folder, Err: err}
	}

	if !fi.IsDir() {
		return &ValidationError{Folder: folder, Err: fmt.Errorf("not a directory")}
	}

	return nil
}

// LocalFiles lists every file under root in lexical order. Entries whose
// relative path or base name matches one of the exclude globs are skipped,
// as are symlinks pointing to directories.
func LocalFiles(root string, exclude []string) ([]structs.LocalFile, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	for _, pattern := range exclude {
		if _, err := path.Match(pattern, ""); err != nil {
			return nil, &ValidationError{Folder: root, Err: fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)}
		}
	}

	files := []structs.LocalFile{}

	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if p == root {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}

		rel = filepath.ToSlash(rel)
		if excluded(rel, exclude) {
			log.Debug().
				Str("path", rel).
				Msg("Excluded from upload")

			if d.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if d.IsDir() {
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			fi, err := os.Stat(p)
			if err != nil {
				return err
			}
			if fi.IsDir() {
				log.Debug().
					Str("path", rel).
					Msg("Skipping symlinked directory")

				return nil
			}
		}

		file, err := structs.NewLocalFile(root, p)
		if err != nil {
			return err
		}

		files = append(files, file)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

func excluded(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := path.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := path.Match(pattern, path.Base(rel)); ok {
			return true
		}
	}

	return false
}
