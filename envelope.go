package session

import "encoding/json"

// Envelope is the uniform wire shape every endpoint response conforms to.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data"`
	Error   string `json:"error"`
}

const snippetLimit = 200

// decodeEnvelope turns a raw response body into a typed value or a
// categorized error. A non-JSON body surfaces as a parse error carrying the
// first 200 bytes of the payload for diagnosis.
func decodeEnvelope[T any](body []byte) (T, error) {
	var zero T

	var env Envelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return zero, parseError(bodySnippet(body))
	}

	if !env.Success || env.Data == nil {
		return zero, serverError(env.Error)
	}

	return *env.Data, nil
}

// envelopeMessage extracts the error message from a failure body, tolerating
// any payload shape.
func envelopeMessage(body []byte) string {
	var env Envelope[json.RawMessage]
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	return env.Error
}

func bodySnippet(body []byte) string {
	if len(body) > snippetLimit {
		body = body[:snippetLimit]
	}
	return string(body)
}
