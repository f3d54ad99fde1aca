package asset

import (
	"context"
	"io"
	"strings"
)

const DefaultContentType = "application/octet-stream"

// File - выбранный пользователем файл.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// IsImage смотрит только на заявленный content type.
func (f File) IsImage() bool {
	return strings.HasPrefix(strings.ToLower(f.ContentType), "image/")
}

// ObjectStore - бинарное хранилище (Storage REST, S3, память).
type ObjectStore interface {
	// Put пишет файл по пути и возвращает путь, под которым объект сохранён.
	Put(ctx context.Context, bucket, path string, f File, upsert bool) (string, error)
	Remove(ctx context.Context, bucket, path string) error
}
