package internal

import (
	"bufio"
	"net"
	"net/http"
	"sync"
)

// ResponseWriter wraps http.ResponseWriter. It records the status and size,
// runs hooks right before the first byte goes out, and answers htmx
// requests with 200 so the client still swaps error fragments in.
type ResponseWriter struct {
	http.ResponseWriter
	beforeWrite []func()
	status      int
	size        int64
	mu          sync.Mutex
	written     bool
	isHTMX      bool
}

// NewResponseWriter creates a new ResponseWriter.
func NewResponseWriter(w http.ResponseWriter, isHTMX bool) *ResponseWriter {
	return &ResponseWriter{
		ResponseWriter: w,
		status:         http.StatusOK,
		isHTMX:         isHTMX,
	}
}

// OnBeforeWrite registers a hook to run before the first write.
// Hooks run in registration order. Hooks registered after the first write
// never run.
func (w *ResponseWriter) OnBeforeWrite(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.written {
		return
	}
	w.beforeWrite = append(w.beforeWrite, fn)
}

// begin marks the response as written and returns the pending hooks.
// It reports false if the response was already written.
func (w *ResponseWriter) begin(code int) ([]func(), bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.written {
		return nil, false
	}
	w.written = true
	w.status = code
	hooks := w.beforeWrite
	w.beforeWrite = nil
	return hooks, true
}

// WriteHeader sends the status line. Repeated calls are ignored.
func (w *ResponseWriter) WriteHeader(code int) {
	hooks, ok := w.begin(code)
	if !ok {
		return
	}
	for _, fn := range hooks {
		fn()
	}
	if w.isHTMX && code != http.StatusOK {
		code = http.StatusOK
	}
	w.ResponseWriter.WriteHeader(code)
}

// Write writes the body, sending an implicit 200 first.
func (w *ResponseWriter) Write(b []byte) (int, error) {
	w.WriteHeader(http.StatusOK)
	n, err := w.ResponseWriter.Write(b)
	w.mu.Lock()
	w.size += int64(n)
	w.mu.Unlock()
	return n, err
}

// Status returns the status code the handler asked for, before any htmx rewrite.
func (w *ResponseWriter) Status() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// Size returns the number of bytes written to the response body.
func (w *ResponseWriter) Size() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

// Written reports whether the response has been written.
func (w *ResponseWriter) Written() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

// Flush implements http.Flusher.
func (w *ResponseWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Hijack implements http.Hijacker.
func (w *ResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := w.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

// Unwrap returns the underlying ResponseWriter for http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
