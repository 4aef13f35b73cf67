package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"Stowed/internal/config"
)

// BlobService stores file content on disk, addressed by content hash.
// Identical uploads and clipboard copies share one blob.
type BlobService interface {
	Save(content io.Reader) (sum string, size int64, err error)
	Open(sum string) (io.ReadCloser, error)
	Delete(sum string) error
	Path(sum string) string
}

type BlobServiceImpl struct {
	root string
}

func NewBlobService(configuration *config.Configuration) BlobService {
	return &BlobServiceImpl{root: configuration.Storage.Path}
}

// Path fans blobs out under two hash-prefix directories to keep
// directory sizes bounded.
func (s *BlobServiceImpl) Path(sum string) string {
	return filepath.Join(s.root, sum[:2], sum[2:4], sum)
}

func (s *BlobServiceImpl) Save(content io.Reader) (string, int64, error) {
	tmp, err := os.CreateTemp(s.root, ".upload-*")
	if err != nil {
		if mkErr := os.MkdirAll(s.root, 0750); mkErr != nil {
			return "", 0, mkErr
		}
		if tmp, err = os.CreateTemp(s.root, ".upload-*"); err != nil {
			return "", 0, err
		}
	}
	defer os.Remove(tmp.Name())

	hasher := sha256.New()
	size, err := io.Copy(io.MultiWriter(tmp, hasher), content)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", 0, fmt.Errorf("failed to spool upload: %w", err)
	}

	sum := hex.EncodeToString(hasher.Sum(nil))
	dest := s.Path(sum)
	if _, err := os.Stat(dest); err == nil {
		return sum, size, nil
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0750); err != nil {
		return "", 0, err
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", 0, err
	}
	return sum, size, nil
}

func (s *BlobServiceImpl) Open(sum string) (io.ReadCloser, error) {
	return os.Open(s.Path(sum))
}

func (s *BlobServiceImpl) Delete(sum string) error {
	err := os.Remove(s.Path(sum))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
