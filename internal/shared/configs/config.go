package configs

// Config holds all configuration for the application.
type Config struct {
	Server        ServerConfig         `mapstructure:"server" validate:"required"`
	Log           LogConfig            `mapstructure:"log" validate:"required"`
	FileStorage   FileStorageConfig    `mapstructure:"file_storage" validate:"required"`
	Channel       ChannelConfig        `mapstructure:"channel"`
	Correlation   CorrelationConfig    `mapstructure:"correlation"`
	Supervisor    SupervisorConfig     `mapstructure:"supervisor"`
	Fabric        FabricConfig         `mapstructure:"fabric"`
	Tracing       TracingConfig        `mapstructure:"tracing"`
	Catalog       CatalogConfig        `mapstructure:"catalog" validate:"required"`
	UsageBindings []UsageBindingConfig `mapstructure:"usage_bindings" validate:"dive"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// FileStorageConfig holds file storage configuration.
type FileStorageConfig struct {
	RootDir string `mapstructure:"root_dir" validate:"required"`
}

// ChannelConfig sizes the partitioned log channel.
type ChannelConfig struct {
	Partitions int `mapstructure:"partitions" validate:"min=1,max=1024"`
	Buffer     int `mapstructure:"buffer" validate:"min=1"`
}

// CorrelationConfig controls token extraction and the anomaly policy.
type CorrelationConfig struct {
	TokenPattern   string `mapstructure:"token_pattern" validate:"required"`
	AnomalyPolicy  string `mapstructure:"anomaly_policy" validate:"oneof=record fail_fast"`
	AwaitTimeoutMs int    `mapstructure:"await_timeout_ms" validate:"min=1"`
	// UntaggedRecords is attribute (records without epoch join the open window) or discard.
	UntaggedRecords string `mapstructure:"untagged_records" validate:"oneof=attribute discard"`
}

// SupervisorConfig controls batch dispatch.
type SupervisorConfig struct {
	MaxConcurrency     int  `mapstructure:"max_concurrency" validate:"min=1"`
	DefaultInvocations int  `mapstructure:"default_invocations" validate:"min=1"`
	PersistReports     bool `mapstructure:"persist_reports"`
}

// FabricConfig sets up the in-process execution fabric and its demo function.
type FabricConfig struct {
	Function             string  `mapstructure:"function" validate:"required"`
	MinLatencyMs         int     `mapstructure:"min_latency_ms" validate:"min=0"`
	JitterMs             int     `mapstructure:"jitter_ms" validate:"min=0"`
	BillingGranularityMs int     `mapstructure:"billing_granularity_ms" validate:"min=1"`
	RedeliveryRate       float64 `mapstructure:"redelivery_rate" validate:"min=0,max=1"`
	RedeliverySeed       int64   `mapstructure:"redelivery_seed"`
	StartupProbe         bool    `mapstructure:"startup_probe"`
}

// TracingConfig selects the OpenTelemetry exporter.
type TracingConfig struct {
	Exporter    string `mapstructure:"exporter" validate:"oneof=none stdout otlp"`
	Endpoint    string `mapstructure:"endpoint" validate:"required_if=Exporter otlp"`
	ServiceName string `mapstructure:"service_name"`
}

// CatalogConfig lists the billable metrics registered at startup, in order.
type CatalogConfig struct {
	Metrics []MetricConfig `mapstructure:"metrics" validate:"required,min=1,dive"`
}

// MetricConfig is one billable metric definition.
type MetricConfig struct {
	Name         string  `mapstructure:"name" validate:"required"`
	Unit         string  `mapstructure:"unit" validate:"required"`
	PricePerUnit float64 `mapstructure:"price_per_unit" validate:"gt=0"`
}

// UsageBindingConfig maps a fabric usage statistic onto a catalog metric.
// Scale converts the fabric unit into the metric unit (e.g. 0.001 for ms -> seconds).
type UsageBindingConfig struct {
	Stat   string  `mapstructure:"stat" validate:"required"`
	Metric string  `mapstructure:"metric" validate:"required"`
	Scale  float64 `mapstructure:"scale" validate:"gt=0"`
}
