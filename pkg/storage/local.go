package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

type LocalStore struct {
	Root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{Root: root}
}

func (s *LocalStore) path(kind Kind, name string) string {
	return filepath.Join(s.Root, string(kind), filepath.Base(name))
}

func (s *LocalStore) Import(_ context.Context, kind Kind, name, localPath string) error {
	dst := s.path(kind, name)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.Rename(localPath, dst)
}

func (s *LocalStore) Stat(_ context.Context, kind Kind, name string) (int64, error) {
	if name == "" {
		return 0, ErrNotExist
	}
	fi, err := os.Stat(s.path(kind, name))
	if os.IsNotExist(err) {
		return 0, ErrNotExist
	}
	if err != nil {
		return 0, err
	}
	if fi.IsDir() {
		return 0, ErrNotExist
	}
	return fi.Size(), nil
}

func (s *LocalStore) Open(_ context.Context, kind Kind, name string, offset, length int64) (io.ReadCloser, error) {
	f, err := os.Open(s.path(kind, name))
	if os.IsNotExist(err) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, err
	}
	if offset > 0 {
		if _, err := f.Seek(offset, io.SeekStart); err != nil {
			f.Close()
			return nil, err
		}
	}
	return limitedReadCloser{Reader: io.LimitReader(f, length), Closer: f}, nil
}

func (s *LocalStore) Remove(_ context.Context, kind Kind, name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(s.path(kind, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
