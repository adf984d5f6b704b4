package stats

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gymly/backend/internal/telemetry/tracing"
	"github.com/gymly/backend/pkg"

	log "github.com/sirupsen/logrus"
)

type statsService interface {
	Totals(ctx context.Context) ([]MuscleGroupTotal, error)
	Chart(ctx context.Context) (*ChartData, error)
}

type TotalsResponse struct {
	Totals []MuscleGroupTotal `json:"totals"`
}

type Handler struct {
	service statsService
}

func NewHandler(service statsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleTotals(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.totals")
	defer span.End()

	totals, err := handler.service.Totals(ctx)
	if err != nil {
		log.Errorf("get muscle group totals error: %s", err)
		http.Error(w, "failed to get muscle group totals", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(TotalsResponse{Totals: totals})
	if err != nil {
		log.Errorf("marshal muscle group totals error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleChart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.chart")
	defer span.End()

	chart, err := handler.service.Chart(ctx)
	if err != nil {
		log.Errorf("get muscle group chart error: %s", err)
		http.Error(w, "failed to get muscle group chart", http.StatusInternalServerError)
		return
	}

	chartJson, err := json.Marshal(chart)
	if err != nil {
		log.Errorf("marshal muscle group chart error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, chartJson, http.StatusOK)
}
