package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/fantasy"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/usecase"
	sonic "github.com/bytedance/sonic"
)

type testEnvelope[T any] struct {
	APIVersion string           `json:"apiVersion"`
	Data       T                `json:"data"`
	Error      *googleErrorBody `json:"error"`
}

func decodeEnvelope[T any](t *testing.T, rec *httptest.ResponseRecorder) testEnvelope[T] {
	t.Helper()

	var body testEnvelope[T]
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body %q: %v", rec.Body.String(), err)
	}
	if body.APIVersion != googleAPIVersion {
		t.Fatalf("expected apiVersion=%s, got %q", googleAPIVersion, body.APIVersion)
	}
	return body
}

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected content type: %q", got)
	}

	body := decodeEnvelope[map[string]string](t, rec)
	if body.Data["status"] != "ok" {
		t.Fatalf("unexpected data: %+v", body.Data)
	}
	if body.Error != nil {
		t.Fatalf("did not expect error in success response")
	}
}

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantStatus string
		wantReason string
	}{
		{name: "invalid input", err: fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput), wantCode: http.StatusBadRequest, wantStatus: "INVALID_ARGUMENT", wantReason: "invalidInput"},
		{name: "unknown player from storage", err: fmt.Errorf("create squad: %w", fantasy.ErrUnknownPlayer), wantCode: http.StatusBadRequest, wantStatus: "INVALID_ARGUMENT", wantReason: "invalidInput"},
		{name: "unauthorized", err: usecase.ErrUnauthorized, wantCode: http.StatusUnauthorized, wantStatus: "UNAUTHENTICATED", wantReason: "unauthorized"},
		{name: "forbidden", err: usecase.ErrForbidden, wantCode: http.StatusForbidden, wantStatus: "PERMISSION_DENIED", wantReason: "forbidden"},
		{name: "not found", err: fmt.Errorf("%w: match m-1", usecase.ErrNotFound), wantCode: http.StatusNotFound, wantStatus: "NOT_FOUND", wantReason: "notFound"},
		{name: "conflict", err: fmt.Errorf("%w: username taken", usecase.ErrConflict), wantCode: http.StatusConflict, wantStatus: "ALREADY_EXISTS", wantReason: "conflict"},
		{name: "bare lock sentinel", err: fantasy.ErrSquadLocked, wantCode: http.StatusConflict, wantStatus: "FAILED_PRECONDITION", wantReason: "squadLocked"},
		{name: "dependency", err: usecase.ErrDependencyUnavailable, wantCode: http.StatusServiceUnavailable, wantStatus: "UNAVAILABLE", wantReason: "dependencyUnavailable"},
		{name: "unexpected", err: errors.New("pq: connection refused"), wantCode: http.StatusInternalServerError, wantStatus: "INTERNAL", wantReason: "internalError"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(context.Background(), rec, tc.err)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected status %d, got %d", tc.wantCode, rec.Code)
			}
			body := decodeEnvelope[any](t, rec)
			if body.Error == nil {
				t.Fatalf("expected error object in response")
			}
			if body.Error.Status != tc.wantStatus {
				t.Fatalf("expected error status %s, got %s", tc.wantStatus, body.Error.Status)
			}
			if len(body.Error.Errors) != 1 || body.Error.Errors[0].Reason != tc.wantReason {
				t.Fatalf("unexpected error items: %+v", body.Error.Errors)
			}
		})
	}
}

func TestWriteError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, errors.New("pq: password authentication failed for user admin"))

	body := decodeEnvelope[any](t, rec)
	if body.Error.Message != "internal server error" {
		t.Fatalf("expected generic message, got %q", body.Error.Message)
	}
}

func TestWriteError_ValidationViolations(t *testing.T) {
	err := &fantasy.ValidationError{Violations: []fantasy.Violation{
		{Rule: fantasy.RuleDuplicatePlayer, Slot: 3, PlayerID: "bfc-def-01", Message: "player bfc-def-01 appears more than once"},
		{Rule: fantasy.RuleBudgetExceeded, Slot: -1, Message: "total cost 101.00 exceeds budget 100.00"},
	}}

	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, err)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	body := decodeEnvelope[any](t, rec)
	if len(body.Error.Errors) != 2 {
		t.Fatalf("expected one item per violation, got %+v", body.Error.Errors)
	}
	first := body.Error.Errors[0]
	if first.Reason != "invalidSquad" || first.Location != "player_ids[3]" || first.LocationType != "body" {
		t.Fatalf("unexpected first item: %+v", first)
	}
	if second := body.Error.Errors[1]; second.Location != "" {
		t.Fatalf("squad-wide violation should have no location: %+v", second)
	}
}

func TestWriteError_LockActive(t *testing.T) {
	err := &fantasy.LockActiveError{
		LockedUntil: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC),
		Remaining:   90*time.Minute + 500*time.Millisecond,
	}

	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("submit: %w", err))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "5401" {
		t.Fatalf("unexpected Retry-After: %q", got)
	}
	body := decodeEnvelope[any](t, rec)
	if body.Error.Errors[0].Reason != "squadLocked" {
		t.Fatalf("unexpected reason: %+v", body.Error.Errors)
	}
}
