package endpoint

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/apikit/observability"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type checker observability.Health

func (c checker) CheckHealth(context.Context) observability.Health { return observability.Health(c) }

func get(t *testing.T, h gin.HandlerFunc) (int, map[string]json.RawMessage) {
	t.Helper()
	r := gin.New()
	r.GET("/", h)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/", http.NoBody))

	var env map[string]json.RawMessage
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid JSON %s: %v", rr.Body.String(), err)
	}
	if len(env) != 1 {
		t.Fatalf("expected a single envelope key, got %s", rr.Body.String())
	}
	return rr.Code, env
}

func TestHealth_Healthy(t *testing.T) {
	code, env := get(t, Health("svc", "1.0.0",
		checker{Name: "db", Status: observability.HealthStatusUp},
		checker{Name: "cache", Status: observability.HealthStatusDegraded},
	))
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	var report struct {
		Service    string                 `json:"service"`
		Status     string                 `json:"status"`
		Components []observability.Health `json:"components"`
		Timestamp  string                 `json:"timestamp"`
	}
	if err := json.Unmarshal(env["success"], &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.Service != "svc" || report.Status != "degraded" || len(report.Components) != 2 || report.Timestamp == "" {
		t.Errorf("unexpected report %+v", report)
	}
}

func TestHealth_Down(t *testing.T) {
	code, env := get(t, Health("svc", "1.0.0",
		checker{Name: "db", Status: observability.HealthStatusDown, Message: "connection refused"},
		checker{Name: "queue", Status: observability.HealthStatusDown},
	))
	if code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", code)
	}
	want := `{"code":"SERVICE_UNAVAILABLE","message":"unhealthy: db (connection refused), queue"}`
	if string(env["error"]) != want {
		t.Errorf("error body = %s, want %s", env["error"], want)
	}
}

func TestHealth_NoCheckers(t *testing.T) {
	code, env := get(t, Health("svc", ""))
	if code != http.StatusOK || env["success"] == nil {
		t.Fatalf("expected healthy success envelope, got %d %v", code, env)
	}
}

func TestReadiness(t *testing.T) {
	code, env := get(t, Readiness("svc", checker{Name: "db", Status: observability.HealthStatusUp}))
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	var probe ProbeStatus
	if err := json.Unmarshal(env["success"], &probe); err != nil || probe.Status != "ready" {
		t.Errorf("unexpected probe %+v (%v)", probe, err)
	}

	code, env = get(t, Readiness("svc", checker{Name: "db", Status: observability.HealthStatusDown}))
	if code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", code)
	}
	if string(env["error"]) != `{"code":"SERVICE_UNAVAILABLE","message":"not ready"}` {
		t.Errorf("unexpected error %s", env["error"])
	}
}

func TestLiveness(t *testing.T) {
	code, env := get(t, Liveness("svc"))
	var probe ProbeStatus
	if err := json.Unmarshal(env["success"], &probe); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if code != http.StatusOK || probe.Status != "alive" || probe.Service != "svc" {
		t.Errorf("unexpected liveness %d %+v", code, probe)
	}
}

func TestInfo(t *testing.T) {
	code, env := get(t, Info("svc"))
	var info ServiceInfo
	if err := json.Unmarshal(env["success"], &info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if code != http.StatusOK || info.Service != "svc" || info.Version == "" || info.Uptime == "" {
		t.Errorf("unexpected info %d %+v", code, info)
	}
}

func TestVersion(t *testing.T) {
	code, env := get(t, Version())
	var v struct {
		Version   string `json:"version"`
		GoVersion string `json:"go_version"`
	}
	if err := json.Unmarshal(env["success"], &v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if code != http.StatusOK || v.Version == "" || v.GoVersion == "" {
		t.Errorf("unexpected version %d %+v", code, v)
	}
}
