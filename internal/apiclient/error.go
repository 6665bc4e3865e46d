package apiclient

import (
	"fmt"
	"strings"

	"github.com/go-faster/jx"
)

// fallbackMessage is used when nothing meaningful can be extracted from a
// failed response.
const fallbackMessage = "an unknown error occurred"

// Error is the domain error for any failed remote call. StatusCode is zero
// for pure transport faults.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("larek api: %s (status %d)", e.Message, e.StatusCode)
	}
	return "larek api: " + e.Message
}

// errorMessage extracts a human-readable message from an error response
// body: the `error` field of a JSON object when present, otherwise the
// body itself, otherwise the HTTP status line.
func errorMessage(body []byte, status string) string {
	if msg := decodeErrorField(body); msg != "" {
		return msg
	}
	if trimmed := strings.TrimSpace(string(body)); trimmed != "" && len(trimmed) <= 512 {
		return trimmed
	}
	if status != "" {
		return status
	}
	return fallbackMessage
}

// decodeErrorField returns the string `error` member of a JSON object body,
// or empty when the body has no such shape.
func decodeErrorField(body []byte) string {
	d := jx.DecodeBytes(body)
	if d.Next() != jx.Object {
		return ""
	}

	var msg string
	err := d.Obj(func(d *jx.Decoder, key string) error {
		if key != "error" {
			return d.Skip()
		}
		s, err := d.Str()
		if err != nil {
			return err
		}
		msg = s
		return nil
	})
	if err != nil {
		return ""
	}
	return msg
}
