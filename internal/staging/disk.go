// Package staging writes inbound multipart file parts to a fixed local
// directory before they are relayed to the media host.
package staging

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

type DiskStager struct {
	dir string
}

func NewDiskStager(dir string) *DiskStager {
	return &DiskStager{dir: dir}
}

// Stage writes the file part to the staging directory and returns its
// local path. The client-supplied filename is kept as-is, so two
// concurrent uploads with the same name overwrite each other.
func (s *DiskStager) Stage(fh *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst := filepath.Join(s.dir, filepath.Base(fh.Filename))
	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return "", err
	}

	return dst, nil
}
