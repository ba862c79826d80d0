package fabric

import (
	"context"
	"math/rand"
	"time"
)

// StartupMarker is printed by EchoTokenFunction on every cold start.
const StartupMarker = "fabric-ledger: function ready"

// EchoTokenFunction returns a handler that logs its correlation token, works for a
// random time in [minLatency, minLatency+jitter) and echoes its payload after the
// startup marker.
func EchoTokenFunction(minLatency, jitter time.Duration) FunctionHandler {
	return func(ctx context.Context, fc *FunctionContext) ([]byte, error) {
		if fc.Token != "" {
			fc.Logf("token=%s started", fc.Token)
		}

		work := minLatency
		if jitter > 0 {
			work += time.Duration(rand.Int63n(int64(jitter)))
		}
		if work > 0 {
			timer := time.NewTimer(work)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		fc.Log("done")
		out := append([]byte(StartupMarker+"\n"), fc.Payload...)
		return out, nil
	}
}
