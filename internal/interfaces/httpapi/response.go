package httpapi

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/fantasy"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/platform/logging"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/usecase"
	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "isl-fantasy"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain       string `json:"domain"`
	Reason       string `json:"reason"`
	Message      string `json:"message"`
	Location     string `json:"location,omitempty"`
	LocationType string `json:"locationType,omitempty"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
	Items      []googleErrorItem
	RetryAfter int
}

// writeJSON encodes into a pooled buffer first so an encoding failure can
// still produce a clean 500.
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		logging.Default().ErrorContext(ctx, "encode response failed", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"apiVersion":"` + googleAPIVersion + `","error":{"code":500,"message":"internal server error","status":"INTERNAL"}}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(status)
	_, _ = w.Write(buf.B)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(err)
	message := err.Error()
	if mapped.HTTPStatus == http.StatusInternalServerError {
		logging.Default().ErrorContext(ctx, "request failed", "error", err)
		message = "internal server error"
	}

	items := mapped.Items
	if len(items) == 0 {
		items = []googleErrorItem{{Domain: errorDomain, Reason: mapped.Reason, Message: message}}
	}
	if mapped.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(mapped.RetryAfter))
	}

	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors:  items,
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeError(ctx, w, errors.New("internal server error"))
}

func mapError(err error) mappedError {
	var validationErr *fantasy.ValidationError
	if errors.As(err, &validationErr) {
		items := make([]googleErrorItem, 0, len(validationErr.Violations))
		for _, v := range validationErr.Violations {
			item := googleErrorItem{Domain: errorDomain, Reason: "invalidSquad", Message: v.Message}
			if v.Slot >= 0 {
				item.Location = fmt.Sprintf("player_ids[%d]", v.Slot)
				item.LocationType = "body"
			}
			items = append(items, item)
		}
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidSquad", Status: "INVALID_ARGUMENT", Items: items}
	}

	var lockErr *fantasy.LockActiveError
	if errors.As(err, &lockErr) {
		return mappedError{
			HTTPStatus: http.StatusConflict,
			Reason:     "squadLocked",
			Status:     "FAILED_PRECONDITION",
			RetryAfter: int(math.Ceil(lockErr.Remaining.Seconds())),
		}
	}

	switch {
	case errors.Is(err, fantasy.ErrSquadLocked):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "squadLocked", Status: "FAILED_PRECONDITION"}
	case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, fantasy.ErrUnknownPlayer):
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{HTTPStatus: http.StatusUnauthorized, Reason: "unauthorized", Status: "UNAUTHENTICATED"}
	case errors.Is(err, usecase.ErrForbidden):
		return mappedError{HTTPStatus: http.StatusForbidden, Reason: "forbidden", Status: "PERMISSION_DENIED"}
	case errors.Is(err, usecase.ErrConflict):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "conflict", Status: "ALREADY_EXISTS"}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "dependencyUnavailable", Status: "UNAVAILABLE"}
	default:
		return mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}
	}
}
