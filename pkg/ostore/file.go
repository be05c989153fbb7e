package ostore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/FAU-CDI/vobox/pkg/omap"
)

const (
	// RootName is the name of the top-level directory of a file-based object store.
	RootName = "ostore"

	// Ext is the extension of files holding records
	Ext = ".txt"

	tempPattern = ".tmp-*"
	dirMode     = 0755
	fileMode    = 0644
)

// Root returns the path to the store directory inside dir.
func Root(dir string) string {
	return filepath.Join(dir, RootName)
}

var (
	errNotADirectory = errors.New("exists but is not a directory")
	errInvalidType   = errors.New("type is not a valid directory name")
)

// FileBackend stores one file per record in a directory.
//
// The record of an object with type T and id I is stored at "Root/T/I.txt", where I is formatted using [omap.ID.String].
// The file contains exactly the value of the record.
type FileBackend struct {
	Root string
}

var _ Backend = (*FileBackend)(nil)

// Path returns the path to the file holding the record of the given object.
func (fb *FileBackend) Path(tp string, id omap.ID) string {
	return filepath.Join(fb.Root, tp, id.String()+Ext)
}

// path is like Path, but checks that the type is a valid directory name.
func (fb *FileBackend) path(tp string) (string, error) {
	if tp == "" || tp == "." || tp == ".." || strings.ContainsAny(tp, `/\`) {
		return "", errInvalidType
	}
	return filepath.Join(fb.Root, tp), nil
}

// ensureDir ensures that path exists and is a directory.
// The parent of path must already exist.
func ensureDir(path string) error {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := os.Mkdir(path, dirMode); err != nil && !errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("failed to stat directory: %w", err)
	case !info.IsDir():
		return fmt.Errorf("%q %w", path, errNotADirectory)
	default:
		return nil
	}
}

// Open ensures that the root directory exists.
func (fb *FileBackend) Open() error {
	return ensureDir(fb.Root)
}

// Close does nothing.
func (fb *FileBackend) Close() error {
	return nil
}

// Write writes value into the file for the given object.
// Writes are atomic: data is written to a temporary file and then renamed into place.
func (fb *FileBackend) Write(tp string, id omap.ID, value []byte) error {
	dir, err := fb.path(tp)
	if err != nil {
		return err
	}
	if err := ensureDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write record: %w", err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to set record permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close record: %w", err)
	}

	if err := os.Rename(tmpName, fb.Path(tp, id)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to rename record: %w", err)
	}
	return nil
}

// Read reads the file for the given object.
func (fb *FileBackend) Read(tp string, id omap.ID) ([]byte, error) {
	if _, err := fb.path(tp); err != nil {
		return nil, err
	}
	return os.ReadFile(fb.Path(tp, id))
}

// Remove removes the file for the given object, if it exists.
func (fb *FileBackend) Remove(tp string, id omap.ID) error {
	if _, err := fb.path(tp); err != nil {
		return err
	}
	err := os.Remove(fb.Path(tp, id))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Iterate iterates over all files in the store.
// Files and directories not created by this backend are skipped.
func (fb *FileBackend) Iterate(f func(Record) error) error {
	types, err := os.ReadDir(fb.Root)
	if err != nil {
		return fmt.Errorf("failed to read store directory: %w", err)
	}

	for _, tp := range types {
		if !tp.IsDir() {
			continue
		}

		entries, err := os.ReadDir(filepath.Join(fb.Root, tp.Name()))
		if err != nil {
			return fmt.Errorf("failed to read type directory: %w", err)
		}

		for _, entry := range entries {
			name, ok := strings.CutSuffix(entry.Name(), Ext)
			if !ok || !entry.Type().IsRegular() {
				continue
			}
			id, err := omap.ParseID(name)
			if err != nil || !id.Valid() {
				continue
			}

			value, err := fb.Read(tp.Name(), id)
			if errors.Is(err, fs.ErrNotExist) { // removed in the meantime
				continue
			}
			if err != nil {
				return err
			}

			if err := f(Record{Type: tp.Name(), ID: id, Value: value}); err != nil {
				return err
			}
		}
	}
	return nil
}
