package blob

import "context"

// Store abstracts durable raw-byte storage for uploaded sources.
// Ingestion only ever holds opaque refs; URL issuance happens here too.
type Store interface {
	Put(ctx context.Context, data []byte, filename string) (ref string, err error)
	Delete(ctx context.Context, ref string) error
	URLFor(ref string) string
}
