package syncer

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gymly/backend/internal/telemetry/metrics"
	"github.com/gymly/backend/internal/telemetry/tracing"
	"github.com/gymly/backend/pkg"

	log "github.com/sirupsen/logrus"
)

type reconciler interface {
	Pull(ctx context.Context) (SyncReport, error)
	Push(ctx context.Context) (SyncReport, error)
	FullSync(ctx context.Context) (SyncReport, error)
	Enabled(ctx context.Context) (bool, error)
	SetEnabled(ctx context.Context, enabled bool) error
}

type SetEnabledRequest struct {
	Enabled bool `json:"enabled"`
}

type EnabledResponse struct {
	Enabled bool `json:"enabled"`
}

type Handler struct {
	reconciler reconciler
	debouncer  *Debouncer
	metrics    *metrics.Manager
}

func NewHandler(reconciler reconciler, debouncer *Debouncer, metrics *metrics.Manager) *Handler {
	return &Handler{
		reconciler: reconciler,
		debouncer:  debouncer,
		metrics:    metrics,
	}
}

func (handler *Handler) writeReport(w http.ResponseWriter, report SyncReport, err error) {
	if err != nil {
		// partial failures still carry a useful report
		log.Errorf("sync finished with failures: %s", err)
	}

	reportJson, marshalErr := json.Marshal(report)
	if marshalErr != nil {
		log.Errorf("failed to marshal sync report: %s", marshalErr)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	statusCode := http.StatusOK
	if err != nil && report.Pulled == 0 && report.Pushed == 0 && !report.Skipped {
		statusCode = http.StatusInternalServerError
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, reportJson, statusCode)
}

func (handler *Handler) HandlePull(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sync.pull")
	defer span.End()

	handler.metrics.CounterSyncPulls.Inc()

	report, err := handler.reconciler.Pull(ctx)
	handler.writeReport(w, report, err)
}

func (handler *Handler) HandlePush(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sync.push")
	defer span.End()

	handler.metrics.CounterSyncPushes.Inc()

	report, err := handler.reconciler.Push(ctx)
	handler.writeReport(w, report, err)
}

func (handler *Handler) HandleFullSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sync.full")
	defer span.End()

	handler.metrics.CounterSyncPulls.Inc()
	handler.metrics.CounterSyncPushes.Inc()

	report, err := handler.reconciler.FullSync(ctx)
	handler.writeReport(w, report, err)
}

// HandleDebounced queues a sync and returns immediately. Rapid
// repeated calls collapse into one sync run.
func (handler *Handler) HandleDebounced(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.sync.debounced")
	defer span.End()

	handler.debouncer.Request(r.Context())
	pkg.WriteResponse(w, pkg.ContentType.Text, "sync scheduled", http.StatusAccepted)
}

func (handler *Handler) HandleGetEnabled(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sync.getenabled")
	defer span.End()

	enabled, err := handler.reconciler.Enabled(ctx)
	if err != nil {
		log.Errorf("failed to get sync enabled: %s", err)
		http.Error(w, "failed to get sync state", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(EnabledResponse{Enabled: enabled})
	if err != nil {
		log.Errorf("failed to marshal sync enabled response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleSetEnabled(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sync.setenabled")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req SetEnabledRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("set sync enabled, unmarshal json params: %s", err)
		http.Error(w, "set sync state failed", http.StatusBadRequest)
		return
	}

	if err := handler.reconciler.SetEnabled(ctx, req.Enabled); err != nil {
		log.Errorf("failed to set sync enabled to %t: %s", req.Enabled, err)
		http.Error(w, "failed to set sync state", http.StatusInternalServerError)
		return
	}

	log.Debugf("sync enabled set to %t", req.Enabled)
	pkg.WriteTextResponseOK(w, "sync state updated")
}
