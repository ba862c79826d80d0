package fabric

import (
	"bytes"
	"context"
)

// StartupProbe verifies a freshly deployed function starts and announces itself.
//
//go:generate mockgen -source=probe.go -destination=./mocks/probe_mock.go -package=mocks
type StartupProbe interface {
	VerifyStartup(ctx context.Context) error
}

// StartupProbeFunc adapts a function to StartupProbe.
type StartupProbeFunc func(ctx context.Context) error

func (f StartupProbeFunc) VerifyStartup(ctx context.Context) error {
	return f(ctx)
}

type invokeProbe struct {
	fabric   ExecutionFabric
	function string
	marker   []byte
}

// NewInvokeProbe checks startup by invoking function once and looking for marker in
// its output.
func NewInvokeProbe(fabric ExecutionFabric, function, marker string) StartupProbe {
	return &invokeProbe{fabric: fabric, function: function, marker: []byte(marker)}
}

func (p *invokeProbe) VerifyStartup(ctx context.Context) error {
	result, err := p.fabric.Invoke(ctx, Invocation{Function: p.function})
	if err != nil {
		return err
	}
	if !bytes.Contains(result.Output, p.marker) {
		return errStartupMarkerMissing(p.function, string(p.marker))
	}
	return nil
}
