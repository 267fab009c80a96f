package openapi

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-formengine/pkg/schema"
)

// Document wraps a raw OpenAPI payload and where it came from.
type Document struct {
	location string
	raw      []byte
}

// NewDocument copies raw into a Document. location is only used in errors.
func NewDocument(location string, raw []byte) (Document, error) {
	if len(raw) == 0 {
		return Document{}, errors.New("openapi: raw document is empty")
	}
	return Document{location: location, raw: append([]byte(nil), raw...)}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(location string, raw []byte) Document {
	doc, err := NewDocument(location, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Location returns the origin of the document.
func (d Document) Location() string {
	return d.location
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Load reads the document identified by src. fsys is required for
// schema.SourceKindFS sources and ignored otherwise.
func Load(ctx context.Context, fsys fs.FS, src schema.Source) (Document, error) {
	if src == nil {
		return Document{}, errors.New("openapi: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case schema.SourceKindFile:
		data, err = os.ReadFile(src.Location())
	case schema.SourceKindFS:
		if fsys == nil {
			return Document{}, fmt.Errorf("openapi: %s: file system is nil", src.Location())
		}
		data, err = fs.ReadFile(fsys, src.Location())
	default:
		return Document{}, fmt.Errorf("openapi: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return Document{}, fmt.Errorf("openapi: read %s: %w", src.Location(), err)
	}
	return NewDocument(src.Location(), data)
}

// LoadFile is shorthand for Load(ctx, nil, schema.SourceFromFile(path)).
func LoadFile(ctx context.Context, path string) (Document, error) {
	return Load(ctx, nil, schema.SourceFromFile(path))
}
