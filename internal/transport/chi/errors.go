package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/resumatch/internal/domain"
	"github.com/kailas-cloud/resumatch/internal/logger"
)

// Error codes reported in the error envelope.
const (
	CodeFieldRequired     = domain.CodeFieldRequired
	CodeInvalidField      = domain.CodeInvalidField
	CodeBadRequest        = "BAD_REQUEST"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeMethodNotAllowed  = "METHOD_NOT_ALLOWED"
	CodeConflict          = "CONFLICT"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodePayloadTooLarge   = "PAYLOAD_TOO_LARGE"
	CodeRateLimited       = "RATE_LIMITED"
	CodeInternalError     = "INTERNAL_ERROR"
)

// ErrorBody is the payload of the error envelope.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// ErrorResponse is the error envelope.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

var errorHandlers = []errorHandler{
	fieldErrorHandler,
	maxBytesHandler,
	sentinelHandler(domain.ErrValidation, http.StatusBadRequest, CodeBadRequest),
	sentinelHandler(domain.ErrUnauthorized, http.StatusUnauthorized, CodeUnauthorized),
	sentinelHandler(domain.ErrForbidden, http.StatusForbidden, CodeForbidden),
	sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
	sentinelHandler(domain.ErrAlreadyApplied, http.StatusConflict, CodeConflict),
	sentinelHandler(domain.ErrUnsupportedFormat, http.StatusUnsupportedMediaType, CodeUnsupportedFormat),
	sentinelHandler(domain.ErrPayloadTooLarge, http.StatusRequestEntityTooLarge, CodePayloadTooLarge),
	sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, CodeRateLimited),
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

func writeFieldError(w http.ResponseWriter, fe *domain.FieldError) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: ErrorBody{
		Code: fe.Code, Message: fe.Message, Field: fe.Field,
	}})
}

// fieldErrorHandler reports validation failures with the offending field.
func fieldErrorHandler(w http.ResponseWriter, err error) bool {
	var fe *domain.FieldError
	if !errors.As(err, &fe) {
		return false
	}
	writeFieldError(w, fe)
	return true
}

func maxBytesHandler(w http.ResponseWriter, err error) bool {
	var mbe *http.MaxBytesError
	if !errors.As(err, &mbe) {
		return false
	}
	writeError(w, http.StatusRequestEntityTooLarge, CodePayloadTooLarge, domain.ErrPayloadTooLarge.Error())
	return true
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
// The sentinel text is the client message; wrapped details stay in the logs.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.With(r.Context(), s.logger)
	for _, h := range errorHandlers {
		if h(w, err) {
			log.Debug("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
