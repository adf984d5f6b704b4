package history

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gymly/backend/internal/splits"
	"github.com/gymly/backend/internal/telemetry/metrics"
	"github.com/gymly/backend/internal/telemetry/tracing"
	"github.com/gymly/backend/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type historyService interface {
	LogWorkout(ctx context.Context, dayID string) (*WorkoutLog, error)
	ListDates(ctx context.Context) ([]string, error)
	ListByDate(ctx context.Context, date string) ([]WorkoutLog, error)
	Get(ctx context.Context, id string) (*WorkoutLog, error)
	Delete(ctx context.Context, id string) error
}

type LogWorkoutRequest struct {
	DayID string `json:"dayId"`
}

type WorkoutsListResponse struct {
	Workouts []WorkoutLog `json:"workouts"`
	Total    int          `json:"total"`
}

type DatesListResponse struct {
	Dates []string `json:"dates"`
	Total int      `json:"total"`
}

type DeletedWorkoutResponse struct {
	DeletedID string `json:"deletedId"`
}

type Handler struct {
	service historyService
	metrics *metrics.Manager
}

func NewHandler(service historyService, metrics *metrics.Manager) *Handler {
	return &Handler{
		service: service,
		metrics: metrics,
	}
}

func (handler *Handler) HandleLogWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.history.logworkout")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req LogWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("log workout, unmarshal json params: %s", err)
		http.Error(w, "log workout failed", http.StatusBadRequest)
		return
	}
	if req.DayID == "" {
		http.Error(w, "error, day id empty", http.StatusBadRequest)
		return
	}

	workout, err := handler.service.LogWorkout(ctx, req.DayID)
	if err != nil {
		if errors.Is(err, splits.ErrDayNotFound) {
			http.Error(w, "day not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to log workout for day %s: %s", req.DayID, err)
		http.Error(w, "error, failed to log workout", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterWorkoutsLogged.Inc()

	workoutJson, err := json.Marshal(workout)
	if err != nil {
		log.Errorf("failed to marshal workout: %s", err)
		http.Error(w, "error, failed to log workout", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, workoutJson, http.StatusCreated)
}

func (handler *Handler) HandleListDates(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.history.listdates")
	defer span.End()

	dates, err := handler.service.ListDates(ctx)
	if err != nil {
		log.Errorf("list workout dates error: %s", err)
		http.Error(w, "failed to get workout dates", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(DatesListResponse{
		Dates: dates,
		Total: len(dates),
	})
	if err != nil {
		log.Errorf("marshal workout dates error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleListWorkouts(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.history.listworkouts")
	defer span.End()

	date := r.URL.Query().Get("date")
	if date == "" {
		http.Error(w, "error, date param empty", http.StatusBadRequest)
		return
	}

	workouts, err := handler.service.ListByDate(ctx, date)
	if err != nil {
		log.Errorf("list workouts for [%s] error: %s", date, err)
		http.Error(w, "failed to get workouts", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(WorkoutsListResponse{
		Workouts: workouts,
		Total:    len(workouts),
	})
	if err != nil {
		log.Errorf("marshal workouts error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleGetWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.history.getworkout")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	workout, err := handler.service.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get workout %s: %s", id, err)
		http.Error(w, "failed to get workout", http.StatusInternalServerError)
		return
	}

	workoutJson, err := json.Marshal(workout)
	if err != nil {
		log.Errorf("failed to marshal workout: %s", err)
		http.Error(w, "failed to marshal workout", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, workoutJson, http.StatusOK)
}

func (handler *Handler) HandleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.history.deleteworkout")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete workout %s: %s", id, err)
		http.Error(w, "workout not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeletedWorkoutResponse{DeletedID: id})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}
