package cart

import (
	"errors"
	"io/fs"
	"os"
	"sync"
)

// MemoryStorage keeps the cart blob in memory. Zero value is ready to use.
type MemoryStorage struct {
	mu   sync.Mutex
	data []byte
}

func (m *MemoryStorage) Load() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data, nil
}

func (m *MemoryStorage) Save(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	return nil
}

func (m *MemoryStorage) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}

// FileStorage persists the cart blob to a single file, mirroring the
// browser's local-storage key.
type FileStorage struct {
	Path string
}

func (f *FileStorage) Load() ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

func (f *FileStorage) Save(data []byte) error {
	return os.WriteFile(f.Path, data, 0o600)
}

func (f *FileStorage) Clear() error {
	err := os.Remove(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
