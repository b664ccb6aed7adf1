package services

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// StorageService manages scratch files that only live for the duration of an
// extraction.
type StorageService interface {
	Spool(data []byte) (string, func(), error)
	EnsureUploadDir() error
	Dir() string
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

func (s *storageService) Dir() string {
	return s.uploadPath
}

// Spool writes data to a uniquely named file. The returned release func removes
// it and may be called any number of times. On error nothing is left behind.
func (s *storageService) Spool(data []byte) (string, func(), error) {
	filePath := filepath.Join(s.uploadPath, fmt.Sprintf("cv_%s.pdf", uuid.New().String()))

	var once sync.Once
	release := func() {
		once.Do(func() {
			_ = os.Remove(filePath)
		})
	}

	dst, err := os.OpenFile(filePath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return "", func() {}, fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := dst.Write(data); err != nil {
		dst.Close()
		release()
		return "", func() {}, fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := dst.Close(); err != nil {
		release()
		return "", func() {}, fmt.Errorf("failed to close temp file: %w", err)
	}

	return filePath, release, nil
}
