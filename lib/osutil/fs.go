package osutil

import (
	"os"
	"path/filepath"
)

// WriteFile writes `contents` to `<path>.part`, then renames it to `path`,
// creating the parent directories first. A failed write never leaves a
// file at `path`.
func WriteFile(path string, contents []byte, perm os.FileMode) error {
	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return err
	}

	tmp := path + ".part"
	err = os.WriteFile(tmp, contents, perm)
	if err != nil {
		os.Remove(tmp)
		return err
	}
	err = os.Rename(tmp, path)
	if err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
