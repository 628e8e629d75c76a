package resource

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Image is an opaque handle to an uploaded or edited raster image. Each handle has its own ID,
// even when two handles carry the same bytes, so a replaced image is always distinguishable from
// the one it replaced. The bytes are never modified after creation.
type Image struct {
	id   uuid.UUID
	name string
	data []byte
}

// New wraps raw image bytes (any format the texture decoder understands) in a fresh handle.
func New(name string, data []byte) *Image {
	buf := make([]byte, len(data))
	copy(buf, data)
	return &Image{id: uuid.New(), name: name, data: buf}
}

// FromFile reads path into a new handle named after the file.
func FromFile(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("resource: %w", err)
	}
	return New(filepath.Base(path), data), nil
}

// ID is the identity used for last-writer-wins checks. A nil handle has uuid.Nil.
func (im *Image) ID() uuid.UUID {
	if im == nil {
		return uuid.Nil
	}
	return im.id
}

// Name is the display name given at creation (usually the file name).
func (im *Image) Name() string {
	if im == nil {
		return ""
	}
	return im.name
}

// Size is the number of encoded bytes.
func (im *Image) Size() int {
	if im == nil {
		return 0
	}
	return len(im.data)
}

// Open returns a reader over the encoded bytes.
func (im *Image) Open() io.Reader {
	if im == nil {
		return bytes.NewReader(nil)
	}
	return bytes.NewReader(im.data)
}

// Same reports whether a and b are the same handle (both nil counts as same).
func Same(a, b *Image) bool {
	return a.ID() == b.ID()
}
