// Package study integrates the external study services: the Jisho
// dictionary, kanji lookup, news for listening practice, text-to-speech
// playback, and pronunciation recording.
package study

import (
	"fmt"
	"net/http"
	"time"
)

// defaultTimeout bounds every outbound request.
const defaultTimeout = 10 * time.Second

// ServiceError wraps a failure from one of the external services.
type ServiceError struct {
	Service string
	Err     error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultTimeout}
}
