package storage

import "context"

// ImageStore persists one rendered image under a slash-separated key
// such as "img/menu/lunch-0.png".
type ImageStore interface {
	Save(ctx context.Context, key string, data []byte, contentType string) error
}
