package http

import (
	"net/http"
	"sync"

	"fabric-ledger/internal/shared/svcerrors"

	"github.com/go-chi/chi/v5/middleware"
)

// appResponseWriter carries what handlers learned about a request (the service error
// and domain fields such as the window or batch id) out to the middlewares.
type appResponseWriter struct {
	middleware.WrapResponseWriter
	svcError *svcerrors.ServiceError

	mu          sync.Mutex
	annotations map[string]string
}

func newAppResponseWriter(w http.ResponseWriter, protoMajor int) *appResponseWriter {
	return &appResponseWriter{
		WrapResponseWriter: middleware.NewWrapResponseWriter(w, protoMajor),
	}
}

func (w *appResponseWriter) SetServiceError(svcError *svcerrors.ServiceError) {
	w.svcError = svcError
}

func (w *appResponseWriter) ErrorCode() string {
	if w.svcError != nil {
		return w.svcError.Code
	}
	return ""
}

// StatusOrOK is the written status, or 200 when the handler never called WriteHeader.
func (w *appResponseWriter) StatusOrOK() int {
	if status := w.Status(); status != 0 {
		return status
	}
	return http.StatusOK
}

// Annotate records a field for the request completion log.
func (w *appResponseWriter) Annotate(key, value string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.annotations == nil {
		w.annotations = make(map[string]string)
	}
	w.annotations[key] = value
}

func (w *appResponseWriter) Annotations() map[string]string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[string]string, len(w.annotations))
	for k, v := range w.annotations {
		out[k] = v
	}
	return out
}

// annotate is a no-op when w is not an appResponseWriter, e.g. in handler unit tests.
func annotate(w http.ResponseWriter, key, value string) {
	if appWriter, ok := w.(*appResponseWriter); ok {
		appWriter.Annotate(key, value)
	}
}
