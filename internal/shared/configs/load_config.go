package configs

import (
	"fmt"
	"strings"

	"fabric-ledger/internal/shared/validators"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. FABRIC_LEDGER_SERVER_PORT.
const EnvPrefix = "FABRIC_LEDGER"

// LoadConfig reads configuration from file and validates it.
// A .env file in the working directory, when present, is loaded into the process
// environment first so that its FABRIC_LEDGER_* entries override the file.
var LoadConfig = func(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read from file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
	}

	// Unmarshal into Config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	if err := validators.Shared().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %s", validators.Describe(err, 1))
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("channel.partitions", 8)
	v.SetDefault("channel.buffer", 1024)
	v.SetDefault("correlation.token_pattern", `token=(\S+)`)
	v.SetDefault("correlation.anomaly_policy", "record")
	v.SetDefault("correlation.await_timeout_ms", 10000)
	v.SetDefault("correlation.untagged_records", "attribute")
	v.SetDefault("supervisor.max_concurrency", 64)
	v.SetDefault("supervisor.default_invocations", 100)
	v.SetDefault("supervisor.persist_reports", true)
	v.SetDefault("fabric.function", "echo")
	v.SetDefault("fabric.min_latency_ms", 5)
	v.SetDefault("fabric.jitter_ms", 20)
	v.SetDefault("fabric.billing_granularity_ms", 100)
	v.SetDefault("fabric.startup_probe", true)
	v.SetDefault("tracing.exporter", "none")
	v.SetDefault("tracing.service_name", "fabric-ledger")
}
