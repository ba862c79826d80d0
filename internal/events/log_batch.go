package events

import "time"

// LogBatch is one push of log records from a remote fabric, archived verbatim before
// its records are published.
type LogBatch struct {
	BatchID    string      `json:"batchId"`
	ReceivedAt time.Time   `json:"receivedAt"`
	Records    []LogRecord `json:"records"`
}
