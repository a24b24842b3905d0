package transport

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/wopr-network/wopr-go/core"
)

// Form is a multipart/form-data body. Parts are written in the order they
// were added.
type Form struct {
	parts []formPart
}

type formPart struct {
	name     string
	value    string
	filename string
	file     io.Reader
}

// NewForm returns an empty form.
func NewForm() *Form {
	return &Form{}
}

// Field appends a plain text field.
func (f *Form) Field(name, value string) *Form {
	f.parts = append(f.parts, formPart{name: name, value: value})
	return f
}

// FieldIf appends a text field only when value is non-empty.
func (f *Form) FieldIf(name, value string) *Form {
	if value == "" {
		return f
	}
	return f.Field(name, value)
}

// File appends a file part read from r.
func (f *Form) File(name, filename string, r io.Reader) *Form {
	f.parts = append(f.parts, formPart{name: name, filename: filename, file: r})
	return f
}

// encode writes the form and returns the body with its content type.
// The content type carries the writer's boundary and must be sent as is.
func (f *Form) encode() (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, p := range f.parts {
		if p.file == nil {
			if err := w.WriteField(p.name, p.value); err != nil {
				return nil, "", fmt.Errorf("%w: write %s field: %w", core.ErrEncode, p.name, err)
			}
			continue
		}

		part, err := w.CreateFormFile(p.name, p.filename)
		if err != nil {
			return nil, "", fmt.Errorf("%w: create form file: %w", core.ErrEncode, err)
		}
		if _, err := io.Copy(part, p.file); err != nil {
			return nil, "", fmt.Errorf("%w: copy file content: %w", core.ErrEncode, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("%w: close multipart writer: %w", core.ErrEncode, err)
	}
	return &buf, w.FormDataContentType(), nil
}
