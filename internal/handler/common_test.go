package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation-engine/internal/engine"
)

func runErrorMapping(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if werr := writeEngineError(c, err); werr != nil {
		t.Fatalf("writeEngineError returned %v", werr)
	}
	var body map[string]interface{}
	if uerr := json.Unmarshal(rec.Body.Bytes(), &body); uerr != nil {
		t.Fatalf("response is not JSON: %v", uerr)
	}
	return rec, body
}

func TestWriteEngineErrorStatuses(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", fmt.Errorf("%w: bad date", engine.ErrInvalidInput), http.StatusBadRequest},
		{"not found", fmt.Errorf("%w: no inventory", engine.ErrNotFound), http.StatusNotFound},
		{"conflict", fmt.Errorf("%w: active bookings", engine.ErrConflict), http.StatusConflict},
		{"already cancelled", engine.ErrAlreadyCancelled, http.StatusConflict},
		{"already released", engine.ErrAlreadyReleased, http.StatusConflict},
		{"invalid transition", engine.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{"busy", engine.ErrBusy, http.StatusServiceUnavailable},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec, _ := runErrorMapping(t, tc.err)
		if rec.Code != tc.want {
			t.Errorf("%s: status = %d, want %d", tc.name, rec.Code, tc.want)
		}
	}
}

func TestWriteEngineErrorInsufficientInventory(t *testing.T) {
	err := &engine.InsufficientInventoryError{
		Date:      time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		Requested: 3,
		Sellable:  2,
	}
	rec, body := runErrorMapping(t, err)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if body["date"] != "2026-06-01" {
		t.Errorf("date = %v, want 2026-06-01", body["date"])
	}
	if body["requested"].(float64) != 3 || body["sellable"].(float64) != 2 {
		t.Errorf("counts = %v / %v", body["requested"], body["sellable"])
	}
}

func TestWriteEngineErrorBusySetsRetryAfter(t *testing.T) {
	rec, _ := runErrorMapping(t, engine.ErrBusy)
	if rec.Header().Get("Retry-After") == "" {
		t.Error("busy response must set Retry-After")
	}
}
