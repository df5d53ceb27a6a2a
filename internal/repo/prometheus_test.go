package repo

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/prometheus/common/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestClient(t *testing.T, handler http.Handler) (*PromClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewPromClient(srv.URL, 2*time.Second, time.Second, 15*time.Second, testLogger())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client, srv
}

func vectorBody(value float64) string {
	return fmt.Sprintf(`{"status":"success","data":{"resultType":"vector","result":[{"metric":{"type":"update"},"value":[%d,"%g"]}]}}`,
		time.Now().Unix(), value)
}

func TestInstantReturnsVector(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/query" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.FormValue("query"); got != "websocket_active_connections" {
			t.Errorf("unexpected query: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, vectorBody(75))
	}))

	res := client.Instant(context.Background(), "websocket_active_connections")
	if res.Failed() {
		t.Fatalf("unexpected failure: %v", res.Err)
	}
	vector, ok := res.Value.(model.Vector)
	if !ok || len(vector) != 1 {
		t.Fatalf("expected one-sample vector, got %#v", res.Value)
	}
	if float64(vector[0].Value) != 75 {
		t.Fatalf("expected 75, got %v", vector[0].Value)
	}
}

func TestInstantSwallowsServerError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	res := client.Instant(context.Background(), "websocket_active_connections")
	if !res.Failed() {
		t.Fatal("expected failed result")
	}
	if res.Value != nil {
		t.Fatalf("expected nil value, got %#v", res.Value)
	}
	if got := client.FailedQueries(); len(got) != 1 || got[0] != "websocket_active_connections" {
		t.Fatalf("expected failure recorded, got %v", got)
	}
}

func TestInstantSwallowsMalformedPayload(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{not json`)
	}))

	res := client.Instant(context.Background(), "go_goroutines")
	if !res.Failed() {
		t.Fatal("expected failed result on malformed payload")
	}
}

func TestRangeHitsQueryRangeEndpoint(t *testing.T) {
	var sawRange bool
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/query_range" {
			sawRange = true
			if r.FormValue("query") == "" {
				t.Error("missing query expression")
			}
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"success","data":{"resultType":"matrix","result":[{"metric":{},"values":[[%d,"1"]]}]}}`, time.Now().Unix())
	}))

	res := client.Range(context.Background(), "rate(websocket_bytes_sent_total[1m])", 5*time.Minute)
	if res.Failed() {
		t.Fatalf("unexpected failure: %v", res.Err)
	}
	if !sawRange {
		t.Fatal("expected query_range endpoint to be called")
	}
	if _, ok := res.Value.(model.Matrix); !ok {
		t.Fatalf("expected matrix, got %#v", res.Value)
	}
}

func TestPing(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"success","data":{"resultType":"scalar","result":[%d,"1"]}}`, time.Now().Unix())
	}))

	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping failure: %v", err)
	}
}

func TestPingFailsOnBadStatus(t *testing.T) {
	client, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if err := client.Ping(context.Background()); err == nil {
		t.Fatal("expected ping error on non-success status")
	}
}

func TestQueryLatencyTracked(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, vectorBody(1))
	}))

	client.Instant(context.Background(), "go_goroutines")
	if client.QueryP95() <= 0 {
		t.Fatal("expected query latency to be recorded")
	}
}
