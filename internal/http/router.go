package http

import (
	"net/http"

	"fabric-ledger/internal/accounting"
	"fabric-ledger/internal/ingestors"
	"fabric-ledger/internal/shared/loggers"
	"fabric-ledger/internal/shared/metrics"
	"fabric-ledger/internal/stores"
	"fabric-ledger/internal/supervisors"

	"github.com/go-chi/chi/v5"
)

// RouterDeps are the services exposed over HTTP.
type RouterDeps struct {
	IngestionService      ingestors.IngestionService
	UsageIngestionService ingestors.UsageIngestionService
	Accountant            accounting.CostAccountingEngine
	Supervisor            supervisors.InvocationSupervisor
	// ReportStore is optional; the /reports routes exist only when reports are persisted.
	ReportStore        stores.CostReportStore
	DefaultInvocations int
}

// NewRouter creates and configures the HTTP router.
func NewRouter(deps RouterDeps, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	// Routes
	router.Post("/logs", errorHandlingAdapter(NewIngestLogHandler(deps.IngestionService)))
	router.Post("/usage", errorHandlingAdapter(NewIngestUsageHandler(deps.UsageIngestionService)))
	router.Get("/report", errorHandlingAdapter(NewReportHandler(deps.Accountant)))
	router.Get("/report/{name}", errorHandlingAdapter(NewLineItemHandler(deps.Accountant)))
	router.Post("/batches", errorHandlingAdapter(NewBatchHandler(deps.Supervisor, deps.DefaultInvocations)))
	if deps.ReportStore != nil {
		archived := errorHandlingAdapter(NewArchivedReportHandler(deps.ReportStore))
		router.Get("/reports/latest", archived)
		router.Get("/reports/{id}", archived)
	}
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
