package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"reflect"
	"strconv"
	"strings"

	"staffkeeper/internal/models"
)

// Form builds a multipart/form-data body. Optional values that are
// absent are omitted entirely rather than sent as empty parts, so the
// backend can tell "not provided" from "set to empty". Errors stick:
// the first one is reported by Encode and later calls are no-ops.
type Form struct {
	buf *bytes.Buffer
	mw  *multipart.Writer
	err error
}

// NewForm returns an empty form.
func NewForm() *Form {
	buf := &bytes.Buffer{}
	return &Form{buf: buf, mw: multipart.NewWriter(buf)}
}

// SetString appends a text part.
func (f *Form) SetString(name, value string) {
	if f.err != nil {
		return
	}
	f.err = f.mw.WriteField(name, value)
}

// SetOptString appends a text part when value is present.
func (f *Form) SetOptString(name string, value *string) {
	if value == nil {
		return
	}
	f.SetString(name, *value)
}

// SetBool appends "1" or "0", the form encoding the backend expects.
func (f *Form) SetBool(name string, value bool) {
	if value {
		f.SetString(name, "1")
		return
	}
	f.SetString(name, "0")
}

// SetOptBool appends a boolean part when value is present.
func (f *Form) SetOptBool(name string, value *bool) {
	if value == nil {
		return
	}
	f.SetBool(name, *value)
}

// SetStrings appends one indexed part per element: name[0], name[1], ...
// A nil slice is omitted; an empty non-nil slice is also omitted, since
// there is nothing to index.
func (f *Form) SetStrings(name string, values []string) {
	for i, v := range values {
		f.SetString(name+"["+strconv.Itoa(i)+"]", v)
	}
}

// SetJSON appends a structured value as a single JSON-encoded part.
// A nil pointer is omitted.
func (f *Form) SetJSON(name string, value any) {
	if f.err != nil || isNil(value) {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		f.err = fmt.Errorf("marshal form part %q: %w", name, err)
		return
	}
	f.SetString(name, string(raw))
}

// SetFile appends a file part with its original filename and content
// type. A nil attachment is omitted.
func (f *Form) SetFile(name string, file *models.FileAttachment) {
	if f.err != nil || file == nil {
		return
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, escapeQuotes(name), escapeQuotes(file.Name)))
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := f.mw.CreatePart(header)
	if err != nil {
		f.err = fmt.Errorf("create form part %q: %w", name, err)
		return
	}
	if _, err := part.Write(file.Data); err != nil {
		f.err = fmt.Errorf("write form part %q: %w", name, err)
	}
}

// Encode finalizes the form and returns the body together with the
// Content-Type header value carrying the boundary.
func (f *Form) Encode() ([]byte, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	if err := f.mw.Close(); err != nil {
		return nil, "", err
	}
	return f.buf.Bytes(), f.mw.FormDataContentType(), nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
