// internal/domain/image/dto.go
package image

import (
	"io"
)

// Upload is a validated-on-ingest image file plus its row attributes.
type Upload struct {
	Owner       Owner
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
	Caption     *string
	IsPrimary   bool
}
