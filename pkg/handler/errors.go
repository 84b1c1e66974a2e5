package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/AccelByte/extend-visitor-achievements/pkg/ledger"
	"github.com/AccelByte/extend-visitor-achievements/pkg/snapshot"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// Error codes of the JSON error envelope.
const (
	CodeBadRequest      = "bad_request"
	CodeInvalidSnapshot = "invalid_snapshot"
	CodeUpstream        = "upstream_unavailable"
	CodeStorage         = "storage_unavailable"
	CodeCanceled        = "canceled"
	CodeInternal        = "internal"
)

// ErrorResponse is the error envelope returned by the API.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

// writeError maps err onto a status code. upstream marks errors caused by the
// stats endpoint rather than by the request body.
func writeError(w http.ResponseWriter, r *http.Request, err error, upstream bool) {
	status, code := http.StatusInternalServerError, CodeInternal

	switch {
	case errors.Is(err, snapshot.ErrInvalidSnapshot) && upstream:
		status, code = http.StatusBadGateway, CodeUpstream
	case errors.Is(err, snapshot.ErrInvalidSnapshot):
		status, code = http.StatusBadRequest, CodeInvalidSnapshot
	case errors.Is(err, ledger.ErrStorage):
		status, code = http.StatusServiceUnavailable, CodeStorage
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status, code = http.StatusServiceUnavailable, CodeCanceled
	}

	reqID := middleware.GetReqID(r.Context())
	logrus.WithField("requestID", reqID).Warnf("%s %s failed: %v", r.Method, r.URL.Path, err)

	writeJSON(w, status, ErrorResponse{
		Code:      code,
		Message:   err.Error(),
		RequestID: reqID,
	})
}

func writeBadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Code:      CodeBadRequest,
		Message:   msg,
		RequestID: middleware.GetReqID(r.Context()),
	})
}
