package middlewares

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"bitbucket.org/parqueoasis/cinema-tickets/config"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type ResponseWriter struct {
	Writer   http.ResponseWriter
	Logger   *log.Entry
	Language string
}

func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{
		Writer: w,
	}
}

type generalResponse struct {
	Errors  []*errorResponse `json:"errors"`
	Success bool             `json:"success"`
	Data    interface{}      `json:"data"`
}

type errorResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Scope   string      `json:"scope,omitempty"`
	Type    int         `json:"type,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrOption func(*errorResponse)

func WithErrorType(errType int) ErrOption {
	return func(err *errorResponse) {
		err.Type = errType
	}
}

func WithErrorScope(scope string) ErrOption {
	return func(err *errorResponse) {
		err.Scope = scope
	}
}

func WithErrorData(data interface{}) ErrOption {
	return func(err *errorResponse) {
		err.Data = data
	}
}

func (r *ResponseWriter) logger() *log.Entry {
	if r.Logger != nil {
		return r.Logger
	}
	return config.GetLogger()
}

// GetRequestLanguage picks the response language from Accept-Language,
// defaulting to English.
func (r *ResponseWriter) GetRequestLanguage(req *http.Request) string {
	r.Language = Language.English
	for _, part := range strings.Split(req.Header.Get("Accept-Language"), ",") {
		tag := strings.ToLower(strings.TrimSpace(strings.SplitN(part, ";", 2)[0]))
		lang := strings.SplitN(tag, "-", 2)[0]
		if _, ok := LanguageMap[lang]; ok {
			r.Language = lang
			break
		}
	}
	return r.Language
}

func (r *ResponseWriter) message(rm *NewRM) string {
	if rm == nil {
		return ""
	}
	if msg, ok := (*rm)[r.Language]; ok {
		return msg
	}
	return (*rm)[Language.English]
}

func (r *ResponseWriter) writeJSONResponse(code int, errors []*errorResponse, data interface{}) {
	response := &generalResponse{Errors: errors, Success: errors == nil, Data: data}
	b, err := json.Marshal(response)
	if err != nil {
		r.Writer.WriteHeader(http.StatusInternalServerError)
		r.Writer.Write([]byte(fmt.Sprintf("unexpected error: %v", err)))
		return
	}
	r.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	r.Writer.WriteHeader(code)
	if _, err := r.Writer.Write(b); err != nil {
		r.logger().WithError(err).Error("could not write response")
	}
}

func (r *ResponseWriter) logStatus(statusCode int, data interface{}, err error, message string) {
	fields := log.Fields{"status_code": statusCode}
	if statusCode < 300 {
		r.logger().WithFields(fields).Info("success")
		return
	}
	if err == nil {
		err = errors.New(message)
	}
	if data != nil {
		fields["errors"] = data
	}
	r.logger().WithFields(fields).Error(err)
}

// Write answers with the response envelope, logging the status. Errors carry
// rm in the request language.
func (r *ResponseWriter) Write(statusCode int, data interface{}, err error, rm *NewRM, opts ...ErrOption) {
	msg := r.message(rm)
	r.logStatus(statusCode, data, err, msg)
	if statusCode < 300 {
		r.writeJSONResponse(statusCode, nil, data)
		return
	}
	errResponse := &errorResponse{Code: statusCode, Message: msg, Data: data}
	for _, With := range opts {
		With(errResponse)
	}
	r.writeJSONResponse(statusCode, []*errorResponse{errResponse}, nil)
}

func (r *ResponseWriter) String(code int, msg string) {
	r.Writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
	r.Writer.WriteHeader(code)
	if _, err := r.Writer.Write([]byte(msg)); err != nil {
		r.logger().WithError(err).Error("could not write response")
	}
}

func (r *ResponseWriter) Error(code int, msg string, opts ...ErrOption) {
	err := &errorResponse{Code: code, Message: msg}
	for _, With := range opts {
		With(err)
	}
	r.writeJSONResponse(code, []*errorResponse{err}, nil)
}
