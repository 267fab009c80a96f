package schema

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

var errSourceMissing = errors.New("schema: source is nil")

// Load reads the document identified by src and parses it. fsys is required
// for SourceKindFS sources and ignored otherwise.
func Load(fsys fs.FS, src Source) (FormSchema, error) {
	if src == nil {
		return FormSchema{}, errSourceMissing
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		data, err = os.ReadFile(src.Location())
	case SourceKindFS:
		if fsys == nil {
			return FormSchema{}, fmt.Errorf("schema: %s: file system is nil", src.Location())
		}
		data, err = fs.ReadFile(fsys, src.Location())
	default:
		return FormSchema{}, fmt.Errorf("schema: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return FormSchema{}, fmt.Errorf("schema: read %s: %w", src.Location(), err)
	}

	return Parse(data, src.Location())
}

// LoadFile is shorthand for Load(nil, SourceFromFile(path)).
func LoadFile(path string) (FormSchema, error) {
	return Load(nil, SourceFromFile(path))
}

// LoadFS is shorthand for Load(fsys, SourceFromFS(name)).
func LoadFS(fsys fs.FS, name string) (FormSchema, error) {
	return Load(fsys, SourceFromFS(name))
}

// Parse decodes a JSON or YAML schema document. The file extension of source,
// when present, picks the decoder; otherwise JSON is tried before YAML.
// Display text is sanitised; invariants are left to the binder.
func Parse(data []byte, source string) (FormSchema, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return FormSchema{}, fmt.Errorf("schema: document %s is empty", source)
	}

	var (
		doc FormSchema
		err error
	)
	switch strings.ToLower(filepath.Ext(source)) {
	case ".json":
		err = json.Unmarshal(data, &doc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		if jsonErr := json.Unmarshal(data, &doc); jsonErr != nil {
			doc = FormSchema{}
			if yamlErr := yaml.Unmarshal(data, &doc); yamlErr != nil {
				return FormSchema{}, fmt.Errorf("schema: parse %s: invalid JSON or YAML", source)
			}
		}
	}
	if err != nil {
		return FormSchema{}, fmt.Errorf("schema: parse %s: %w", source, err)
	}

	return sanitizeSchema(doc), nil
}

func sanitizeSchema(doc FormSchema) FormSchema {
	doc.Title = SanitizeText(doc.Title)
	if len(doc.Fields) == 0 {
		return doc
	}
	fields := make([]FieldSpec, len(doc.Fields))
	for i, field := range doc.Fields {
		field.Label = SanitizeText(field.Label)
		field.Placeholder = SanitizeText(field.Placeholder)
		field.Tooltip = SanitizeText(field.Tooltip)
		fields[i] = field
	}
	doc.Fields = fields
	return doc
}
