package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestHTTPErrorHandler(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"http error", echo.NewHTTPError(http.StatusNotFound, "route missing"), http.StatusNotFound, "route missing"},
		{"default message", echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "Method Not Allowed"},
		{"plain error", errors.New("db down"), http.StatusInternalServerError, "db down"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			HTTPErrorHandler(tc.err, c)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rec.Code)
			}
			var body ErrorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if body.Error != tc.wantError || body.Status != tc.wantStatus {
				t.Errorf("unexpected body %+v", body)
			}
		})
	}
}

func TestSuccess(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	if err := Success(c, http.StatusCreated, "created", map[string]int{"id": 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var body struct {
		Status  int            `json:"status"`
		Message string         `json:"message"`
		Data    map[string]int `json:"data"`
	}
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Status != http.StatusCreated || body.Message != "created" || body.Data["id"] != 3 {
		t.Errorf("unexpected body %+v", body)
	}
}
