package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/apikit/errors"
	"github.com/kbukum/apikit/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestAPI() (*gin.Engine, *itemStore) {
	store := newItemStore()
	r := gin.New()
	(&itemHandler{store: store}).register(r.Group("/api/v1"))
	return r, store
}

func call(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeItem(t *testing.T, rr *httptest.ResponseRecorder) Item {
	t.Helper()
	env, err := response.Decode[Item](rr.Body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	it, err := env.Result()
	if err != nil {
		t.Fatalf("expected success envelope, got %v", err)
	}
	return it
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) errors.Code {
	t.Helper()
	env, err := response.Decode[response.Never](rr.Body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.IsSuccess() {
		t.Fatal("expected error envelope")
	}
	return env.Err().Code()
}

func TestItems_CRUD(t *testing.T) {
	r, _ := newTestAPI()

	rr := call(r, "POST", "/api/v1/items", `{"name":"bolt","quantity":5}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rr.Code, rr.Body.String())
	}
	created := decodeItem(t, rr)
	path := "/api/v1/items/" + created.ID.String()

	rr = call(r, "GET", path, "")
	if rr.Code != http.StatusOK || decodeItem(t, rr).Name != "bolt" {
		t.Fatalf("get: %d", rr.Code)
	}

	rr = call(r, "PUT", path, `{"name":"bolt","quantity":9}`)
	if rr.Code != http.StatusOK || decodeItem(t, rr).Quantity != 9 {
		t.Fatalf("update: %d", rr.Code)
	}

	rr = call(r, "PUT", path, `{"name":"bolt-m6"}`)
	if updated := decodeItem(t, rr); updated.Name != "bolt-m6" || updated.Quantity != 9 {
		t.Fatalf("partial update changed quantity: %+v", updated)
	}

	rr = call(r, "POST", "/api/v1/items", `{"name":"rivet"}`)
	if rivet := decodeItem(t, rr); rivet.Quantity != 0 {
		t.Fatalf("expected zero quantity, got %d", rivet.Quantity)
	}

	rr = call(r, "GET", "/api/v1/items", "")
	env, err := response.Decode[[]Item](rr.Body)
	if err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if list, _ := env.Data(); len(list) != 2 {
		t.Fatalf("expected 2 items, got %d", len(list))
	}

	rr = call(r, "DELETE", path, "")
	if rr.Code != http.StatusNoContent || rr.Body.Len() != 0 {
		t.Fatalf("delete: %d %q", rr.Code, rr.Body.String())
	}

	rr = call(r, "GET", path, "")
	if rr.Code != http.StatusNotFound || errorCode(t, rr) != errors.CodeNotFound {
		t.Fatalf("get after delete: %d", rr.Code)
	}
}

func TestItems_Errors(t *testing.T) {
	r, store := newTestAPI()
	if rr := call(r, "POST", "/api/v1/items", `{"name":"nut"}`); rr.Code != http.StatusCreated {
		t.Fatalf("seed: %d", rr.Code)
	}

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		readOnly   bool
		wantStatus int
		wantCode   errors.Code
	}{
		{"invalid id", "GET", "/api/v1/items/not-a-uuid", "", false, 400, errors.CodeBadRequest},
		{"unknown id", "GET", "/api/v1/items/00000000-0000-0000-0000-000000000001", "", false, 404, errors.CodeNotFound},
		{"malformed body", "POST", "/api/v1/items", `{"name":`, false, 400, errors.CodeBadRequest},
		{"validation", "POST", "/api/v1/items", `{"name":"x","quantity":-1}`, false, 400, errors.CodeBadRequest},
		{"duplicate", "POST", "/api/v1/items", `{"name":"NUT"}`, false, 409, errors.CodeConflict},
		{"read only", "POST", "/api/v1/items", `{"name":"washer"}`, true, 503, errors.CodeServiceUnavailable},
		{"oversized body", "POST", "/api/v1/items", `{"name":"` + strings.Repeat("x", 20000) + `"}`, false, 413, errors.CodePayloadTooLarge},
		{"delete unknown", "DELETE", "/api/v1/items/00000000-0000-0000-0000-000000000001", "", false, 404, errors.CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store.SetReadOnly(tt.readOnly)
			defer store.SetReadOnly(false)

			rr := call(r, tt.method, tt.path, tt.body)
			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rr.Code, tt.wantStatus, rr.Body.String())
			}
			if code := errorCode(t, rr); code != tt.wantCode {
				t.Errorf("code = %s, want %s", code, tt.wantCode)
			}
		})
	}
}

func TestItemStore_Health(t *testing.T) {
	store := newItemStore()
	if h := store.CheckHealth(t.Context()); h.Status != "up" {
		t.Errorf("expected up, got %s", h.Status)
	}
	store.SetReadOnly(true)
	if h := store.CheckHealth(t.Context()); h.Status != "degraded" || h.Message != "read-only" {
		t.Errorf("expected degraded read-only, got %+v", h)
	}
}

func TestConfig_Defaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Name != serviceName || cfg.Version == "" {
		t.Errorf("unexpected service defaults %+v", cfg.ServiceConfig)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("unexpected server port %d", cfg.Server.Port)
	}
	if cfg.Telemetry.Tracer.ServiceName != serviceName || cfg.Telemetry.Meter.Endpoint != "localhost:4318" {
		t.Errorf("unexpected telemetry defaults %+v", cfg.Telemetry)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}
