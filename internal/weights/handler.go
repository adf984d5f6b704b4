package weights

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gymly/backend/internal/telemetry/tracing"
	"github.com/gymly/backend/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=repo_mocks_test.go -package=weights_test

type weightsRepo interface {
	Upsert(ctx context.Context, point *WeightPoint) error
	List(ctx context.Context) ([]WeightPoint, error)
	Delete(ctx context.Context, id string) error
}

type AddWeightRequest struct {
	Weight float64 `json:"weight"`
	Date   string  `json:"date,omitempty"`
}

type WeightsListResponse struct {
	Points []WeightPoint `json:"points"`
	Total  int           `json:"total"`
}

type DeletedWeightResponse struct {
	DeletedID string `json:"deletedId"`
}

type Handler struct {
	repo weightsRepo
	now  func() time.Time
}

func NewHandler(repo weightsRepo) *Handler {
	return &Handler{
		repo: repo,
		now:  time.Now,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weights.add")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req AddWeightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("add weight, unmarshal json params: %s", err)
		http.Error(w, "add weight failed", http.StatusBadRequest)
		return
	}
	if req.Weight <= 0 {
		http.Error(w, "error, weight must be positive", http.StatusBadRequest)
		return
	}

	date := req.Date
	if date == "" {
		date = handler.now().Format(DateLayout)
	} else if _, err := time.Parse(DateLayout, date); err != nil {
		http.Error(w, "error, invalid date format", http.StatusBadRequest)
		return
	}

	point := &WeightPoint{
		ID:        uuid.NewString(),
		Date:      date,
		Weight:    req.Weight,
		CreatedAt: handler.now(),
	}
	if err := handler.repo.Upsert(ctx, point); err != nil {
		log.Errorf("failed to add weight point for %s: %s", date, err)
		http.Error(w, "error, failed to add weight point", http.StatusInternalServerError)
		return
	}

	log.Debugf("weight point added: %s -> %.1f", point.Date, point.Weight)

	pointJson, err := json.Marshal(point)
	if err != nil {
		log.Errorf("failed to marshal weight point: %s", err)
		http.Error(w, "error, failed to add weight point", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, pointJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weights.list")
	defer span.End()

	points, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list weight points error: %s", err)
		http.Error(w, "failed to get weight points", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(WeightsListResponse{
		Points: points,
		Total:  len(points),
	})
	if err != nil {
		log.Errorf("marshal weight points error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weights.delete")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrWeightPointNotFound) {
			http.Error(w, "weight point not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete weight point %s: %s", id, err)
		http.Error(w, "weight point not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeletedWeightResponse{DeletedID: id})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}
