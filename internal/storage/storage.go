// Package storage описывает хранилище байтов blobs. Метаданные blobs живут в БД,
// здесь только потоковая запись, чтение и удаление по ключу.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound возвращается бэкендами, если объекта с ключом нет.
var ErrObjectNotFound = errors.New("object not found")

// ObjectStore - потоковое хранилище объектов.
type ObjectStore interface {
	// Put читает r до EOF и сохраняет под key. Возвращает число записанных байт.
	Put(ctx context.Context, key string, r io.Reader, contentType string) (int64, error)
	// Open открывает объект на чтение. Закрывает вызывающий.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete удаляет объект.
	Delete(ctx context.Context, key string) error
}

// ObjectKey раскладывает объекты по подкаталогам по первым символам id.
func ObjectKey(id string) string {
	if len(id) < 2 {
		return "blobs/" + id
	}
	return "blobs/" + id[:2] + "/" + id
}

// CountingReader считает прочитанные байты.
type CountingReader struct {
	R io.Reader
	N int64
}

func (c *CountingReader) Read(p []byte) (int, error) {
	n, err := c.R.Read(p)
	c.N += int64(n)
	return n, err
}
