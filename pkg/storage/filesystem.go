package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage persists files on disk under a base directory and serves them
// through signed download links.
type LocalStorage struct {
	baseDir string
	signer  *SignedURLSigner
	prefix  string
}

// NewLocalStorage ensures the base directory exists and returns a handle.
func NewLocalStorage(baseDir string, signer *SignedURLSigner, prefix string) (*LocalStorage, error) {
	if baseDir == "" {
		baseDir = "./media"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create media directory: %w", err)
	}
	return &LocalStorage{baseDir: baseDir, signer: signer, prefix: strings.TrimRight(prefix, "/")}, nil
}

// Put copies body into the file named by key.
func (s *LocalStorage) Put(_ context.Context, key string, body io.ReadSeeker, _ int64, _ string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("prepare media directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create media file: %w", err)
	}
	defer file.Close() //nolint:errcheck
	if _, err := io.Copy(file, body); err != nil {
		return fmt.Errorf("write media file: %w", err)
	}
	return nil
}

// Get opens the stored file.
func (s *LocalStorage) Get(_ context.Context, key string) (*Object, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("open media file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("stat media file: %w", err)
	}
	return &Object{
		Body:          file,
		ContentLength: info.Size(),
		ContentType:   mime.TypeByExtension(filepath.Ext(path)),
		LastModified:  info.ModTime(),
	}, nil
}

// Delete removes a stored file if present.
func (s *LocalStorage) Delete(_ context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete media file: %w", err)
	}
	return nil
}

// URL returns "<prefix>/<token>" where the token is signed for key.
func (s *LocalStorage) URL(_ context.Context, key string) (string, error) {
	if s.signer == nil {
		return "", fmt.Errorf("local storage has no signer")
	}
	token, _, err := s.signer.Generate("media", key)
	if err != nil {
		return "", err
	}
	return s.prefix + "/" + token, nil
}

// KeyFromToken validates a download token issued by URL and returns its key.
func (s *LocalStorage) KeyFromToken(token string) (string, error) {
	if s.signer == nil {
		return "", fmt.Errorf("local storage has no signer")
	}
	_, key, _, err := s.signer.Parse(token, false)
	if err != nil {
		return "", err
	}
	return key, nil
}

// resolve confines key to the base directory.
func (s *LocalStorage) resolve(key string) (string, error) {
	cleaned := filepath.Clean("/" + key)
	if cleaned == "/" {
		return "", fmt.Errorf("empty media key")
	}
	return filepath.Join(s.baseDir, cleaned), nil
}
