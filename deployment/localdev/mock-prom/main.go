// mock-prom fabricates Prometheus HTTP API responses for the series a game
// WebSocket server exports, so gamewatch can be exercised without a live
// monitoring stack:
//
//	go run ./deployment/localdev/mock-prom &
//	gamewatch --prometheus-url http://localhost:9091
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"
)

type sample struct {
	labels map[string]string
	value  float64
}

func main() {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/query", func(w http.ResponseWriter, r *http.Request) {
		expr := r.FormValue("query")
		writeVector(w, samplesFor(expr))
	})

	mux.HandleFunc("/api/v1/query_range", func(w http.ResponseWriter, r *http.Request) {
		expr := r.FormValue("query")
		writeMatrix(w, samplesFor(expr))
	})

	log.Println("mock-prom listening on :9091")
	log.Fatal(http.ListenAndServe(":9091", mux))
}

func samplesFor(expr string) []sample {
	switch {
	case expr == "1":
		return []sample{{value: 1}}
	case expr == "websocket_active_connections":
		return []sample{{value: 75}}
	case expr == "websocket_total_connections":
		return []sample{{value: 420}}
	case expr == "websocket_connection_errors_total":
		return []sample{{value: 3}}
	case strings.Contains(expr, "websocket_connection_errors_total[5m]"):
		return []sample{{value: 0.02}}
	case strings.Contains(expr, "websocket_messages_received_total"):
		return []sample{
			{labels: map[string]string{"type": "update"}, value: 25.4},
			{labels: map[string]string{"type": "chat"}, value: 0.8},
		}
	case strings.Contains(expr, "websocket_messages_sent_total"):
		return []sample{
			{labels: map[string]string{"type": "playerUpdate"}, value: 64.2},
			{labels: map[string]string{"type": "state"}, value: 12.1},
		}
	case strings.Contains(expr, "websocket_bytes_sent_total"):
		return []sample{{value: 1.6e6}}
	case strings.Contains(expr, "websocket_bytes_received_total"):
		return []sample{{value: 2.4e5}}
	case strings.Contains(expr, "websocket_broadcasts_sent_total"):
		return []sample{{value: 18}}
	case strings.Contains(expr, "websocket_broadcast_recipients_sum"):
		return []sample{{value: 9.5}}
	case strings.Contains(expr, "websocket_broadcast_recipients_bucket"):
		return []sample{{value: 14}}
	case strings.Contains(expr, "websocket_message_processing_duration_seconds_bucket"):
		return []sample{
			{labels: map[string]string{"type": "update"}, value: 0.012},
			{labels: map[string]string{"type": "join"}, value: 0.13},
		}
	case expr == "game_active_sessions":
		return []sample{{value: 9}}
	case expr == "game_total_sessions":
		return []sample{{value: 131}}
	case strings.Contains(expr, "game_players_per_session_bucket"):
		return []sample{{value: 6}}
	case expr == "go_goroutines":
		return []sample{{value: 1450}}
	case expr == "go_memstats_heap_inuse_bytes":
		return []sample{{value: 180e6}}
	case expr == "go_memstats_alloc_bytes":
		return []sample{{value: 150e6}}
	case expr == "go_memstats_sys_bytes":
		return []sample{{value: 320e6}}
	case strings.Contains(expr, "go_memstats_heap_inuse_bytes[5m]"):
		return []sample{{value: 12000}}
	case strings.Contains(expr, "process_cpu_seconds_total"):
		return []sample{{value: 0.42}}
	case strings.Contains(expr, "go_gc_duration_seconds_count"):
		return []sample{{value: 8.5}}
	case strings.Contains(expr, "go_memstats_alloc_bytes_total"):
		return []sample{{value: 5.2e6}}
	default:
		return nil
	}
}

func writeVector(w http.ResponseWriter, samples []sample) {
	ts := float64(time.Now().Unix())
	result := make([]map[string]any, 0, len(samples))
	for _, s := range samples {
		result = append(result, map[string]any{
			"metric": labelsOrEmpty(s.labels),
			"value":  []any{ts, formatValue(s.value)},
		})
	}
	writeJSON(w, map[string]any{
		"status": "success",
		"data":   map[string]any{"resultType": "vector", "result": result},
	})
}

func writeMatrix(w http.ResponseWriter, samples []sample) {
	now := time.Now()
	result := make([]map[string]any, 0, len(samples))
	for _, s := range samples {
		values := make([][]any, 0, 4)
		for i := 3; i >= 0; i-- {
			ts := float64(now.Add(-time.Duration(i) * 15 * time.Second).Unix())
			values = append(values, []any{ts, formatValue(s.value)})
		}
		result = append(result, map[string]any{
			"metric": labelsOrEmpty(s.labels),
			"values": values,
		})
	}
	writeJSON(w, map[string]any{
		"status": "success",
		"data":   map[string]any{"resultType": "matrix", "result": result},
	})
}

func labelsOrEmpty(labels map[string]string) map[string]string {
	if labels == nil {
		return map[string]string{}
	}
	return labels
}

func formatValue(v float64) string {
	data, _ := json.Marshal(v)
	return string(data)
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode response: %v", err)
	}
}
