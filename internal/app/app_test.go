package app

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"fabric-ledger/internal/fabric"
	"fabric-ledger/internal/models"
	"fabric-ledger/internal/shared/configs"
	"fabric-ledger/internal/supervisors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *configs.Config {
	t.Helper()
	return &configs.Config{
		Server: configs.ServerConfig{
			Port:              0,
			ReadHeaderTimeout: 5,
			ReadTimeout:       10,
			WriteTimeout:      10,
			IdleTimeout:       60,
		},
		Log:         configs.LogConfig{Level: "error"},
		FileStorage: configs.FileStorageConfig{RootDir: t.TempDir()},
		Channel:     configs.ChannelConfig{Partitions: 4, Buffer: 256},
		Correlation: configs.CorrelationConfig{
			TokenPattern:   `token=(\S+)`,
			AnomalyPolicy:  "record",
			AwaitTimeoutMs: 5000,
		},
		Supervisor: configs.SupervisorConfig{
			MaxConcurrency:     8,
			DefaultInvocations: 10,
			PersistReports:     true,
		},
		Fabric: configs.FabricConfig{
			Function:             "echo",
			MinLatencyMs:         1,
			JitterMs:             2,
			BillingGranularityMs: 100,
			StartupProbe:         true,
		},
		Tracing: configs.TracingConfig{Exporter: "none"},
		Catalog: configs.CatalogConfig{Metrics: []configs.MetricConfig{
			{Name: "functionCallDuration", Unit: "second", PricePerUnit: 0.0000166667},
			{Name: "functionCallRequests", Unit: "request", PricePerUnit: 0.0000002},
		}},
		UsageBindings: []configs.UsageBindingConfig{
			{Stat: fabric.StatEstimatedBilledTime, Metric: "functionCallDuration", Scale: 0.001},
			{Stat: fabric.StatInvocations, Metric: "functionCallRequests", Scale: 1},
		},
	}
}

func TestApp_RunsSupervisedBatch(t *testing.T) {
	application, err := New(testConfig(t), WithLogOutput(io.Discard))
	require.NoError(t, err)
	application.StartBackground()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		assert.NoError(t, application.Shutdown(ctx))
	})

	result, err := application.Supervisor().RunBatch(context.Background(), supervisors.BatchRequest{
		Function: "echo",
		Count:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, models.WindowComplete, result.Ledger.Outcome)
	assert.NotEmpty(t, result.ReportID)

	// the startup probe invocation is billed too
	requests, err := application.Accountant().Find(context.Background(), "functionCallRequests")
	require.NoError(t, err)
	assert.InDelta(t, 11, requests.Measured, 1e-9)

	var buf bytes.Buffer
	require.NoError(t, application.Accountant().Serialize(context.Background(), &buf))
	assert.Contains(t, buf.String(), "functionCallRequests,request,")
}

func TestNew_RejectsBindingToUnknownMetric(t *testing.T) {
	cfg := testConfig(t)
	cfg.UsageBindings = append(cfg.UsageBindings, configs.UsageBindingConfig{Stat: "outboundBytes", Metric: "egress", Scale: 1})

	application, err := New(cfg, WithLogOutput(io.Discard))
	require.Error(t, err)
	assert.Nil(t, application)
	assert.Contains(t, err.Error(), "failed to initialize usage collector")
}

func TestNew_RejectsInvalidTokenPattern(t *testing.T) {
	cfg := testConfig(t)
	cfg.Correlation.TokenPattern = `token=(`

	application, err := New(cfg, WithLogOutput(io.Discard))
	require.Error(t, err)
	assert.Nil(t, application)
	assert.Contains(t, err.Error(), "failed to initialize token matcher")
}
