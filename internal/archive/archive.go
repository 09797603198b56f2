// Package archive packs generated artifacts into a zip file.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cameronsjo/fabricdocs/internal/fileutil"
)

// ErrSymlinkNotSupported indicates a symlink was found under the source.
var ErrSymlinkNotSupported = errors.New("symlinks are not supported")

// ZipDir writes every regular file below src into a deflate-compressed zip
// at dst, named by its slash-separated path relative to src. When dst lies
// inside src it is not added to itself. Returns the number of files added.
func ZipDir(src, dst string) (int, error) {
	info, err := os.Stat(src)
	if err != nil {
		return 0, fmt.Errorf("artifacts directory: %w", err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("artifacts directory: %s is not a directory", src)
	}

	files, err := collect(src, dst)
	if err != nil {
		return 0, err
	}

	err = fileutil.WriteAtomic(dst, 0644, func(w io.Writer) error {
		zw := zip.NewWriter(w)
		for _, rel := range files {
			if err := addFile(zw, filepath.Join(src, rel), filepath.ToSlash(rel)); err != nil {
				zw.Close()
				return err
			}
		}
		return zw.Close()
	})
	if err != nil {
		return 0, fmt.Errorf("write %s: %w", dst, err)
	}

	return len(files), nil
}

// collect lists files below src relative to it, skipping dst.
// The list is built before dst is created so the archive never sees
// its own temp file.
func collect(src, dst string) ([]string, error) {
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dst, err)
	}

	var files []string
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type()&os.ModeSymlink != 0 {
			return fmt.Errorf("%s: %w", path, ErrSymlinkNotSupported)
		}
		if !d.Type().IsRegular() {
			return nil
		}

		if abs, err := filepath.Abs(path); err == nil && abs == absDst {
			return nil
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return fmt.Errorf("calculate relative path: %w", err)
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", src, err)
	}
	return files, nil
}

func addFile(zw *zip.Writer, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("zip header for %s: %w", path, err)
	}
	header.Name = name
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("add %s: %w", name, err)
	}
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("compress %s: %w", name, err)
	}
	return nil
}
