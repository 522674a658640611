// internal/app/features/errors/logger.go
package errors

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/authpages/internal/domain/models"
	"go.uber.org/zap"
)

// ErrorLogger logs a request failure and answers it, as an HTML page for
// browsers or a JSON body for the intake API.
type ErrorLogger struct {
	Log   *zap.Logger
	Pages *Pages
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger, pages *Pages) *ErrorLogger {
	return &ErrorLogger{Log: logger, Pages: pages}
}

// LogServerError logs at error level and renders a 500 page.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsgKey string, kc *models.KcContext) {
	e.Log.Error(msg, requestFields(r, err)...)
	e.page(w, r, http.StatusInternalServerError, userMsgKey, kc)
}

// LogBadRequest logs at warn level and renders a 400 page.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsgKey string) {
	e.Log.Warn(msg, requestFields(r, err)...)
	e.page(w, r, http.StatusBadRequest, userMsgKey, nil)
}

// LogNotFound logs at info level and renders a 404 page.
func (e *ErrorLogger) LogNotFound(w http.ResponseWriter, r *http.Request, msg string, err error, userMsgKey string) {
	e.Log.Info(msg, requestFields(r, err)...)
	e.page(w, r, http.StatusNotFound, userMsgKey, nil)
}

// LogJSON logs and writes {"error": userMsg} with status. 5xx statuses log
// at error level, everything else at warn.
func (e *ErrorLogger) LogJSON(w http.ResponseWriter, r *http.Request, status int, msg string, err error, userMsg string) {
	if status >= http.StatusInternalServerError {
		e.Log.Error(msg, requestFields(r, err)...)
	} else {
		e.Log.Warn(msg, requestFields(r, err)...)
	}
	WriteJSON(w, status, map[string]string{"error": userMsg})
}

// WriteJSON writes v as a JSON response.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (e *ErrorLogger) page(w http.ResponseWriter, r *http.Request, status int, key string, kc *models.KcContext) {
	if e.Pages == nil {
		http.Error(w, http.StatusText(status), status)
		return
	}
	if err := e.Pages.Render(w, r, status, key, kc); err != nil {
		e.Log.Error("render error page failed", zap.Error(err))
	}
}

func requestFields(r *http.Request, err error) []zap.Field {
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	return fields
}
