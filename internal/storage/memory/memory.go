package memory

import (
	"bytes"
	"context"
	"io"
	"sync"

	"GophMart/internal/storage"
)

type object struct {
	data        []byte
	contentType string
}

// Backend - in-memory реализация storage.ObjectStore для тестов и dev-режима.
type Backend struct {
	mu      sync.RWMutex
	objects map[string]object
}

// New создаёт пустое in-memory хранилище.
func New() *Backend {
	return &Backend{objects: make(map[string]object)}
}

func (b *Backend) Put(ctx context.Context, key string, r io.Reader, contentType string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[key] = object{data: data, contentType: contentType}
	return int64(len(data)), nil
}

func (b *Backend) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	obj, ok := b.objects[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

func (b *Backend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.objects[key]; !ok {
		return storage.ErrObjectNotFound
	}
	delete(b.objects, key)
	return nil
}

// Len возвращает число объектов.
func (b *Backend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.objects)
}

// Has сообщает, есть ли объект с ключом.
func (b *Backend) Has(key string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.objects[key]
	return ok
}
