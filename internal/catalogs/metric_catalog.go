package catalogs

import (
	"sync"

	"fabric-ledger/internal/models"
	"fabric-ledger/internal/shared/configs"
	"fabric-ledger/internal/shared/metrics"
	"fabric-ledger/internal/shared/validators"
)

// MetricCatalog is the registry of billable metric definitions. It is populated once
// while the process is composed and only read afterwards; lookups never block each
// other.
//
//go:generate mockgen -source=metric_catalog.go -destination=./mocks/metric_catalog_mock.go -package=mocks
type MetricCatalog interface {
	Register(def models.MetricDefinition) error
	Lookup(name string) (models.MetricDefinition, error)
	// List returns every definition in registration order.
	List() []models.MetricDefinition
}

type metricCatalog struct {
	mu      sync.RWMutex
	byName  map[string]int
	ordered []models.MetricDefinition
}

func NewMetricCatalog() MetricCatalog {
	return &metricCatalog{byName: make(map[string]int)}
}

// NewMetricCatalogFromConfig registers the configured metrics in file order.
func NewMetricCatalogFromConfig(metricConfigs []configs.MetricConfig) (MetricCatalog, error) {
	catalog := NewMetricCatalog()
	for _, mc := range metricConfigs {
		def := models.MetricDefinition{Name: mc.Name, Unit: mc.Unit, PricePerUnit: mc.PricePerUnit}
		if err := catalog.Register(def); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

func (c *metricCatalog) Register(def models.MetricDefinition) error {
	if err := validators.Shared().Struct(def); err != nil {
		svcErr := errInvalidMetric(err)
		metricRegisteredTotal.WithLabelValues(svcErr.Code).Inc()
		return svcErr
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byName[def.Name]; exists {
		svcErr := errDuplicateMetric(def.Name)
		metricRegisteredTotal.WithLabelValues(svcErr.Code).Inc()
		return svcErr
	}
	c.byName[def.Name] = len(c.ordered)
	c.ordered = append(c.ordered, def)

	metricRegisteredTotal.WithLabelValues(metrics.ValueNoError).Inc()
	return nil
}

func (c *metricCatalog) Lookup(name string) (models.MetricDefinition, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	idx, ok := c.byName[name]
	if !ok {
		return models.MetricDefinition{}, ErrUnknownMetricNamed(name)
	}
	return c.ordered[idx], nil
}

func (c *metricCatalog) List() []models.MetricDefinition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.MetricDefinition, len(c.ordered))
	copy(out, c.ordered)
	return out
}
