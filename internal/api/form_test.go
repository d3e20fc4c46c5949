package api

import (
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staffkeeper/internal/models"
)

// parseForm decodes an encoded form back into field values and file
// parts keyed by part name.
func parseForm(t *testing.T, body []byte, contentType string) (map[string][]string, map[string]*multipart.FileHeader) {
	t.Helper()

	_, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)

	reader := multipart.NewReader(strings.NewReader(string(body)), params["boundary"])
	form, err := reader.ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := map[string]*multipart.FileHeader{}
	for name, headers := range form.File {
		require.Len(t, headers, 1, "expected a single file per part name")
		files[name] = headers[0]
	}
	return form.Value, files
}

func TestForm_OmitsAbsentFields(t *testing.T) {
	form := NewForm()
	form.SetString("name", "A")
	form.SetFile("photo", &models.FileAttachment{Name: "me.png", ContentType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}})
	form.SetStrings("tags", []string{"x", "y"})
	form.SetJSON("meta", nil)
	form.SetOptString("phone", nil)
	form.SetOptBool("suspended", nil)

	body, contentType, err := form.Encode()
	require.NoError(t, err)

	values, files := parseForm(t, body, contentType)

	assert.Equal(t, []string{"A"}, values["name"])
	assert.Equal(t, []string{"x"}, values["tags[0]"])
	assert.Equal(t, []string{"y"}, values["tags[1]"])

	require.Contains(t, files, "photo")
	assert.Equal(t, "me.png", files["photo"].Filename)
	assert.Equal(t, "image/png", files["photo"].Header.Get("Content-Type"))

	// Absent optionals must not appear at all, not even as empty parts.
	assert.NotContains(t, values, "meta")
	assert.NotContains(t, values, "phone")
	assert.NotContains(t, values, "suspended")
	assert.NotContains(t, values, "tags")
}

func TestForm_JSONPart(t *testing.T) {
	form := NewForm()
	form.SetJSON("emergency_contact", &models.EmergencyContact{Name: "Bob", Phone: "555-0100"})

	body, contentType, err := form.Encode()
	require.NoError(t, err)

	values, _ := parseForm(t, body, contentType)
	require.Contains(t, values, "emergency_contact")
	assert.JSONEq(t, `{"name":"Bob","phone":"555-0100"}`, values["emergency_contact"][0])
}

func TestForm_TypedNilJSONOmitted(t *testing.T) {
	var contact *models.EmergencyContact

	form := NewForm()
	form.SetString("name", "A")
	form.SetJSON("emergency_contact", contact)

	body, contentType, err := form.Encode()
	require.NoError(t, err)

	values, _ := parseForm(t, body, contentType)
	assert.NotContains(t, values, "emergency_contact")
}

func TestForm_BoolEncoding(t *testing.T) {
	yes, no := true, false

	form := NewForm()
	form.SetOptBool("suspended", &yes)
	form.SetOptBool("active", &no)

	body, contentType, err := form.Encode()
	require.NoError(t, err)

	values, _ := parseForm(t, body, contentType)
	assert.Equal(t, []string{"1"}, values["suspended"])
	assert.Equal(t, []string{"0"}, values["active"])
}

func TestForm_FileContentTypeDefaults(t *testing.T) {
	form := NewForm()
	form.SetFile("document", &models.FileAttachment{Name: "id.pdf", Data: []byte("%PDF-1.4")})

	body, contentType, err := form.Encode()
	require.NoError(t, err)

	_, files := parseForm(t, body, contentType)
	require.Contains(t, files, "document")
	assert.Equal(t, "application/octet-stream", files["document"].Header.Get("Content-Type"))

	f, err := files["document"].Open()
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
}

func TestForm_EmptySliceOmitted(t *testing.T) {
	form := NewForm()
	form.SetString("name", "A")
	form.SetStrings("departments", []string{})

	body, contentType, err := form.Encode()
	require.NoError(t, err)

	values, _ := parseForm(t, body, contentType)
	for name := range values {
		assert.NotContains(t, name, "departments")
	}
}
