package models

import (
	"errors"
	"fmt"
)

// ErrLineItemNotFound is returned by CostReport.Find for names without a line item.
var ErrLineItemNotFound = errors.New("cost line item not found")

// CostLineItem is the priced consumption of one metric.
// Cost is always PricePerUnit * Measured.
type CostLineItem struct {
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	PricePerUnit float64 `json:"pricePerUnit"`
	Measured     float64 `json:"measured"`
	Cost         float64 `json:"cost"`
}

// NewCostLineItem derives a line item from a definition and a measured total.
func NewCostLineItem(def MetricDefinition, measured float64) CostLineItem {
	return CostLineItem{
		Name:         def.Name,
		Unit:         def.Unit,
		PricePerUnit: def.PricePerUnit,
		Measured:     measured,
		Cost:         def.CostOf(measured),
	}
}

// CostReport is the priced breakdown of accumulated consumption. LineItems follow
// catalog registration order and Total is the running sum of their costs.
type CostReport struct {
	LineItems []CostLineItem `json:"lineItems"`
	Total     float64        `json:"total"`
}

// Append adds an item and folds its cost into Total.
func (r *CostReport) Append(item CostLineItem) {
	r.LineItems = append(r.LineItems, item)
	r.Total += item.Cost
}

// Find returns the line item with the given metric name.
func (r *CostReport) Find(name string) (CostLineItem, error) {
	for _, item := range r.LineItems {
		if item.Name == name {
			return item, nil
		}
	}
	return CostLineItem{}, fmt.Errorf("%w: %q", ErrLineItemNotFound, name)
}
