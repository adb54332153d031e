package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kdnguyen/gogaku/internal/store"
)

// requestLogKey holds the bounded list of recent LLM requests.
const requestLogKey = "llmRequests"

// requestLogCap is how many request entries are retained.
const requestLogCap = 50

// RequestLogEntry describes one LLM request for diagnostics.
type RequestLogEntry struct {
	Timestamp    string `json:"timestamp"`
	Model        string `json:"model"`
	Purpose      string `json:"purpose"`
	LatencyMs    int64  `json:"latencyMs"`
	Success      bool   `json:"success"`
	InputTokens  int    `json:"inputTokens"`
	OutputTokens int    `json:"outputTokens"`
	RequestBody  string `json:"requestBody"`
	ResponseBody string `json:"responseBody,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// LoggingProvider is a decorator that records every LLM request in the
// key-value store for later inspection.
type LoggingProvider struct {
	inner Provider
	kv    store.KVStore
}

// WithLogging wraps a Provider with request logging.
func WithLogging(p Provider, kv store.KVStore) Provider {
	return &LoggingProvider{inner: p, kv: kv}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	entry := RequestLogEntry{
		Timestamp:   start.UTC().Format(time.RFC3339),
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		entry.InputTokens = resp.Usage.InputTokens
		entry.OutputTokens = resp.Usage.OutputTokens
		entry.Model = resp.Model
		entry.ResponseBody = resp.Content
	}

	if err != nil {
		entry.ErrorMessage = err.Error()
	}

	// Log the entry but don't fail the request if logging fails.
	if logErr := l.append(ctx, entry); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log LLM request: %v\n", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// append prepends entry to the stored log, trimming to the cap.
func (l *LoggingProvider) append(ctx context.Context, entry RequestLogEntry) error {
	var entries []RequestLogEntry
	if _, err := store.GetJSON(ctx, l.kv, requestLogKey, &entries); err != nil {
		return err
	}
	entries = append([]RequestLogEntry{entry}, entries...)
	if len(entries) > requestLogCap {
		entries = entries[:requestLogCap]
	}
	return store.SetJSON(ctx, l.kv, requestLogKey, entries)
}

// RequestLog reads the stored request log, newest first.
func RequestLog(ctx context.Context, kv store.KVStore) ([]RequestLogEntry, error) {
	var entries []RequestLogEntry
	if _, err := store.GetJSON(ctx, kv, requestLogKey, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		b.WriteString(fmt.Sprintf("[%s]\n", m.Role))
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	return b.String()
}
