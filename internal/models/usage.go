package models

// UsageSample is one observed measurement for a metric. Samples are folded into a
// MetricAggregate and then discarded.
type UsageSample struct {
	MetricName string  `json:"metric" validate:"required"`
	Quantity   float64 `json:"quantity" validate:"gte=0"`
	Ordinal    uint64  `json:"ordinal,omitempty"`
}

// UsageStats is a pre-aggregated view of many samples, as reported by the
// execution fabric.
//
// Example JSON (fabric snapshot keyed by statistic name):
//
//	{
//	  "estimatedBilledTime": {"mean": 200, "sampleCount": 100},
//	  "invocations":         {"mean": 1,   "sampleCount": 100}
//	}
type UsageStats struct {
	Mean        float64 `json:"mean"`
	SampleCount int64   `json:"sampleCount"`
}

// Sum returns the total quantity behind the stats.
func (s UsageStats) Sum() float64 {
	return s.Mean * float64(s.SampleCount)
}

// MetricAggregate holds the running statistics of one metric.
// Sum == Mean * SampleCount holds after every fold.
type MetricAggregate struct {
	MetricName  string  `json:"metric"`
	SampleCount int64   `json:"sampleCount"`
	Mean        float64 `json:"mean"`
	Sum         float64 `json:"sum"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
}
