// Package export abstracts "write these bytes somewhere the operator can
// reach them" behind a single capability interface, so the admin store does
// not care whether a backup lands in a local directory or an S3 bucket.
package export

import "context"

// FileExporter saves a named artifact and returns the location it ended up
// at (a filesystem path, an s3:// address, ...).
type FileExporter interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}
