package loggers

const (
	FieldApp        = "app"
	FieldComponent  = "component"
	FieldHttpMethod = "http_method"
	FieldHttpPath   = "http_path"
	FieldHttpStatus = "http_status"

	FieldDuration   = "duration"
	FieldRequestID  = "request_id"
	FieldErrorStack = "error_stack"
	FieldErrorCode  = "error_code"

	FieldPartitionId = "partition_id"

	FieldWindowID     = "window_id"
	FieldEpoch        = "epoch"
	FieldToken        = "token"
	FieldMetric       = "metric"
	FieldInvocationID = "invocation_id"
	FieldFunction     = "function"
	FieldBatchID      = "batch_id"
	FieldReportID     = "report_id"
	FieldOutcome      = "outcome"
)
