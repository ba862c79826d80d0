package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCostLineItem_CostIsPriceTimesMeasured(t *testing.T) {
	t.Parallel()

	def := MetricDefinition{Name: "requests", Unit: "count", PricePerUnit: 0.000001}
	item := NewCostLineItem(def, 1)

	assert.Equal(t, "requests", item.Name)
	assert.Equal(t, "count", item.Unit)
	assert.Equal(t, 1.0, item.Measured)
	assert.Equal(t, 0.000001, item.Cost)
	assert.Equal(t, item.PricePerUnit*item.Measured, item.Cost)
}

func TestCostReport_AppendAndFind(t *testing.T) {
	t.Parallel()

	report := &CostReport{}
	report.Append(NewCostLineItem(MetricDefinition{Name: "duration", Unit: "second", PricePerUnit: 0.5}, 4))
	report.Append(NewCostLineItem(MetricDefinition{Name: "requests", Unit: "count", PricePerUnit: 0.25}, 2))

	assert.Equal(t, 2.5, report.Total)

	item, err := report.Find("requests")
	require.NoError(t, err)
	assert.Equal(t, 0.5, item.Cost)

	_, err = report.Find("egress")
	assert.ErrorIs(t, err, ErrLineItemNotFound)
	assert.Contains(t, err.Error(), `"egress"`)
}

func TestUsageStats_Sum(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 80.0, UsageStats{Mean: 40, SampleCount: 2}.Sum())
	assert.Equal(t, 0.0, UsageStats{}.Sum())
}
