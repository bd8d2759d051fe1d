package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func respond(t *testing.T, err error) (int, ProblemDetail) {
	t.Helper()
	rr := httptest.NewRecorder()
	RespondError(rr, err)
	var problem ProblemDetail
	if decodeErr := json.NewDecoder(rr.Body).Decode(&problem); decodeErr != nil {
		t.Fatalf("decode problem: %v", decodeErr)
	}
	return rr.Code, problem
}

func TestRespondErrorMapping(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantTitle  string
	}{
		{ErrNotFound, http.StatusNotFound, "Not Found"},
		{ErrValidation, http.StatusBadRequest, "Validasi Gagal"},
		{ErrForbidden, http.StatusForbidden, "Forbidden"},
		{ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
		{ErrUpstream, http.StatusBadGateway, "Gagal Memuat Data"},
		{errors.New("unexpected"), http.StatusInternalServerError, "Internal Error"},
	}
	for _, tc := range cases {
		status, problem := respond(t, tc.err)
		if status != tc.wantStatus {
			t.Errorf("%v: status = %d, want %d", tc.err, status, tc.wantStatus)
		}
		if problem.Title != tc.wantTitle {
			t.Errorf("%v: title = %q, want %q", tc.err, problem.Title, tc.wantTitle)
		}
	}
}

func TestRespondErrorUnwrapsWrappedSentinels(t *testing.T) {
	status, problem := respond(t, fmt.Errorf("muat rekap: %w", ErrUpstream))

	if status != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", status, http.StatusBadGateway)
	}
	if problem.Detail == "" {
		t.Fatal("expected the wrapped message in detail")
	}
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	_, problem := respond(t, errors.New("dsn=postgres://secret"))

	if problem.Detail != "" {
		t.Fatalf("internal error detail must be empty, got %q", problem.Detail)
	}
}
