package services

import (
	"encoding/json"
	"errors"
)

// isJSONDecodingError reports whether err came from decoding malformed JSON.
// Malformed persisted records are treated as absent, never as fatal errors.
func isJSONDecodingError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}
