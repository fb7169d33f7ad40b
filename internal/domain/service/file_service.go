package service

import (
	"context"
	"io"
)

// ImageStore keeps uploaded images (payment QR codes, game art) and hands back
// public URLs.
type ImageStore interface {
	UploadImage(ctx context.Context, file io.Reader, contentType, folder string) (string, error)
	DeleteImage(ctx context.Context, url string) error
	Close() error
}
