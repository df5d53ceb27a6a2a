package analyzer

// Query expressions for the series the game server exports.
const (
	queryActiveConnections   = `websocket_active_connections`
	queryTotalConnections    = `websocket_total_connections`
	queryConnectionErrors    = `websocket_connection_errors_total`
	queryConnectionErrorRate = `rate(websocket_connection_errors_total[5m])`

	queryMessagesReceivedRate = `rate(websocket_messages_received_total[1m])`
	queryMessagesSentRate     = `rate(websocket_messages_sent_total[1m])`

	queryBytesSentRate     = `rate(websocket_bytes_sent_total[1m])`
	queryBytesReceivedRate = `rate(websocket_bytes_received_total[1m])`

	queryBroadcastRate          = `rate(websocket_broadcasts_sent_total[1m])`
	queryBroadcastMeanRecipient = `rate(websocket_broadcast_recipients_sum[1m]) / rate(websocket_broadcast_recipients_count[1m])`
	queryBroadcastP95Recipient  = `histogram_quantile(0.95, rate(websocket_broadcast_recipients_bucket[5m]))`

	queryProcessingP95 = `histogram_quantile(0.95, rate(websocket_message_processing_duration_seconds_bucket[5m]))`

	queryActiveSessions    = `game_active_sessions`
	queryTotalSessions     = `game_total_sessions`
	queryMedianSessionSize = `histogram_quantile(0.50, rate(game_players_per_session_bucket[5m]))`

	queryGoroutines     = `go_goroutines`
	queryHeapInuse      = `go_memstats_heap_inuse_bytes`
	queryHeapAlloc      = `go_memstats_alloc_bytes`
	querySysMemory      = `go_memstats_sys_bytes`
	queryHeapGrowthRate = `rate(go_memstats_heap_inuse_bytes[5m])`
	queryCPURate        = `rate(process_cpu_seconds_total[1m])`
	queryGCRate         = `rate(go_gc_duration_seconds_count[1m])`
	queryAllocRate      = `rate(go_memstats_alloc_bytes_total[1m])`
)
