package models

// MetricDefinition is a named, priced, unit-bearing quantity of resource consumption.
// Definitions are immutable once registered in a catalog.
type MetricDefinition struct {
	Name         string  `json:"name" validate:"required"`
	Unit         string  `json:"unit" validate:"required"`
	PricePerUnit float64 `json:"pricePerUnit" validate:"gt=0"`
}

// CostOf prices a measured quantity of this metric.
func (d MetricDefinition) CostOf(measured float64) float64 {
	return d.PricePerUnit * measured
}
