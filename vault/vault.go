// Package vault gives access to the markdown folder notes are written to.
package vault

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/bobinette/papersync"
	"github.com/bobinette/papersync/errors"
)

const filePerm = 0644

// Vault implements papersync.Vault on top of an afero filesystem. Every path
// is relative to the root of the filesystem and checked before use.
type Vault struct {
	fs afero.Fs
}

// New returns a vault rooted at dir on the OS filesystem.
func New(dir string) *Vault {
	return NewWithFs(afero.NewBasePathFs(afero.NewOsFs(), dir))
}

func NewWithFs(fs afero.Fs) *Vault {
	return &Vault{fs: fs}
}

// EnsureFolder creates the folder at path and its parents. A folder created
// concurrently by someone else is not an error.
func (v *Vault) EnsureFolder(path string) error {
	if err := checkPath(path); err != nil {
		return err
	}
	p := filepath.FromSlash(path)

	if ok, _ := afero.DirExists(v.fs, p); ok {
		return nil
	}

	if err := v.fs.MkdirAll(p, os.ModePerm); err != nil {
		if ok, _ := afero.DirExists(v.fs, p); ok {
			return nil
		}
		return errors.New(fmt.Sprintf("could not create folder %s", path),
			errors.WithKind(errors.FolderCreateFailed),
			errors.WithPath(path),
			errors.WithCause(err),
		)
	}
	return nil
}

// FileExists reports whether path is a regular file. Unsafe paths never exist.
func (v *Vault) FileExists(path string) bool {
	if checkPath(path) != nil {
		return false
	}

	info, err := v.fs.Stat(filepath.FromSlash(path))
	return err == nil && info.Mode().IsRegular()
}

// CreateFile writes a new file, failing if one already exists at path.
func (v *Vault) CreateFile(path, content string) error {
	if err := checkPath(path); err != nil {
		return err
	}

	f, err := v.fs.OpenFile(filepath.FromSlash(path), os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		return writeError(path, err)
	}

	_, err = f.WriteString(content)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return writeError(path, err)
	}
	return nil
}

func (v *Vault) ReadFile(path string) (string, error) {
	if err := checkPath(path); err != nil {
		return "", err
	}
	if !v.FileExists(path) {
		return "", errors.New(fmt.Sprintf("file not found: %s", path), errors.WithKind(errors.FileReadFailed), errors.WithPath(path))
	}

	data, err := afero.ReadFile(v.fs, filepath.FromSlash(path))
	if err != nil {
		return "", errors.New(fmt.Sprintf("could not read %s", path),
			errors.WithKind(errors.FileReadFailed),
			errors.WithPath(path),
			errors.WithCause(err),
		)
	}
	return string(data), nil
}

// ModifyFile replaces the content of an existing file.
func (v *Vault) ModifyFile(path, content string) error {
	if err := checkPath(path); err != nil {
		return err
	}
	if !v.FileExists(path) {
		return errors.New(fmt.Sprintf("file not found: %s", path), errors.WithKind(errors.FileWriteFailed), errors.WithPath(path))
	}

	if err := afero.WriteFile(v.fs, filepath.FromSlash(path), []byte(content), filePerm); err != nil {
		return writeError(path, err)
	}
	return nil
}

func checkPath(path string) error {
	if !papersync.IsSafePath(path) {
		return errors.New(fmt.Sprintf("unsafe path: %q", path), errors.WithKind(errors.InvalidPath), errors.WithPath(path))
	}
	return nil
}

func writeError(path string, cause error) error {
	return errors.New(fmt.Sprintf("could not write %s", path),
		errors.WithKind(errors.FileWriteFailed),
		errors.WithPath(path),
		errors.WithCause(cause),
	)
}
