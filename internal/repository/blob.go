package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/redis/go-redis/v9"
)

// MemoryBlob keeps the ledger bytes in process memory
type MemoryBlob struct {
	mu   sync.RWMutex
	data []byte
}

func NewMemoryBlob() *MemoryBlob {
	return &MemoryBlob{}
}

func (b *MemoryBlob) Load(_ context.Context) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.data == nil {
		return nil, nil
	}
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out, nil
}

func (b *MemoryBlob) Save(_ context.Context, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.data = append([]byte(nil), data...)
	return nil
}

// FileBlob keeps the ledger in a JSON file on disk
type FileBlob struct {
	path string
}

// NewFileBlob creates the parent directory of path when missing
func NewFileBlob(path string) (*FileBlob, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to ensure ledger dir for %q: %w", path, err)
	}
	return &FileBlob{path: path}, nil
}

func (b *FileBlob) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

// Save writes atomically through a temp file in the same directory
func (b *FileBlob) Save(_ context.Context, data []byte) error {
	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp, b.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to finalize file: %w", err)
	}
	return nil
}

// RedisBlob keeps the ledger JSON under a single redis key
type RedisBlob struct {
	client *redis.Client
	key    string
}

func NewRedisBlob(client *redis.Client, key string) *RedisBlob {
	return &RedisBlob{client: client, key: key}
}

func (b *RedisBlob) Load(ctx context.Context) ([]byte, error) {
	data, err := b.client.Get(ctx, b.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return data, err
}

func (b *RedisBlob) Save(ctx context.Context, data []byte) error {
	return b.client.Set(ctx, b.key, data, 0).Err()
}

func (b *RedisBlob) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}
