package events

import "time"

// LogRecord is one raw line of invocation output travelling on the log channel.
//
// Epoch is the observation-window tag stamped by the dispatcher. Records pushed by a
// remote fabric that cannot carry the tag leave it at 0 and are attributed to
// whichever window is open when they arrive.
//
// Example JSON:
//
//	{
//	  "invocationId": "3f6c2a0e-5d1b-4a51-9a43-0c2f8b7a1e90",
//	  "epoch": 4,
//	  "sequence": 2,
//	  "message": "token=17 finished in 182ms",
//	  "emittedAt": "2026-10-19T09:12:44.120Z"
//	}
type LogRecord struct {
	InvocationID string    `json:"invocationId"`
	Epoch        uint64    `json:"epoch,omitempty"`
	Sequence     uint64    `json:"sequence"`
	Text         string    `json:"message"`
	EmittedAt    time.Time `json:"emittedAt"`
}

// PartitionKey keeps every record of one invocation on the same delivery lane.
func (r LogRecord) PartitionKey() string {
	return r.InvocationID
}
