package api

import (
	"encoding/json"
	"errors"
	"io"

	"staffkeeper/internal/models"
)

// envelope mirrors the uniform JSON shape of every backend response:
//
//	{ "success": bool, "message": "...", "data": ..., "meta": {...}, "errors": {...} }
//
// data is kept raw so each endpoint can decode its own payload type.
// meta appears only on paginated listings, errors only on 422 responses.
type envelope struct {
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
	Meta    *models.PageMeta    `json:"meta"`
	Message string              `json:"message"`
	Success bool                `json:"success"`
}

// decode unmarshals the data payload into v.
func (e *envelope) decode(v any) error {
	if len(e.Data) == 0 {
		return errors.New("response carries no data")
	}
	return json.Unmarshal(e.Data, v)
}

// decodeEnvelope reads a response body. An empty body (204 or a
// best-effort logout) yields an empty successful envelope; a non-JSON
// body (a proxy error page, say) yields nil and an error.
func decodeEnvelope(r io.Reader) (*envelope, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return &envelope{Success: true}, nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	return &env, nil
}
