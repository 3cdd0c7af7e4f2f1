// Package monitoring provides Prometheus instrumentation for store
// operations.
//
// Metrics exposed:
//   - safejson_operations_total: operations by op and result code
//   - safejson_operation_duration_seconds: latency histogram by op
//   - safejson_bytes_read_total / safejson_bytes_written_total
//   - safejson_backups_total / safejson_restores_total
//
// Attach to a store with WithMetrics; a store without metrics records
// nothing.
//
// Example Usage:
//
//	metrics := monitoring.NewMetrics()
//	store, _ := safejson.New(cfg)
//	store = store.WithMetrics(metrics)
package monitoring
