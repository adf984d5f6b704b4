package splits

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gymly/backend/internal/settings"
	"github.com/gymly/backend/internal/telemetry/metrics"
	"github.com/gymly/backend/internal/telemetry/tracing"
	"github.com/gymly/backend/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=splits_test

type splitsService interface {
	NewSplit(ctx context.Context, name string, dayCount int) (*Split, error)
	Get(ctx context.Context, id string) (*Split, error)
	GetActive(ctx context.Context) (*Split, error)
	List(ctx context.Context) ([]Split, error)
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
	Activate(ctx context.Context, id string) error
	AddExercise(ctx context.Context, dayID string, params AddExerciseParams) (*Exercise, bool, error)
	GetExercise(ctx context.Context, id string) (*Exercise, error)
	DeleteExercise(ctx context.Context, id string) error
	MarkExerciseDone(ctx context.Context, id string) (*Exercise, *Exercise, error)
	AddSet(ctx context.Context, params AddSetParams) (*Set, error)
	UpdateSet(ctx context.Context, set *Set) error
	DeleteSet(ctx context.Context, id string) error
	AdvanceCursor(ctx context.Context) (settings.DayCursor, error)
	GetCursor(ctx context.Context) (settings.DayCursor, error)
}

type NewSplitRequest struct {
	Name     string `json:"name"`
	DayCount int    `json:"dayCount"`
}

type RenameSplitRequest struct {
	Name string `json:"name"`
}

type SplitsListResponse struct {
	Splits []Split `json:"splits"`
	Total  int     `json:"total"`
}

type AddExerciseRequest struct {
	Name        string `json:"name"`
	RepGoal     string `json:"repGoal"`
	MuscleGroup string `json:"muscleGroup"`
}

type AddExerciseResponse struct {
	Exercise *Exercise `json:"exercise"`
	Created  bool      `json:"created"`
}

type ExerciseDoneResponse struct {
	Exercise *Exercise `json:"exercise"`
	Next     *Exercise `json:"next,omitempty"`
}

type DeletedResponse struct {
	DeletedID string `json:"deletedId"`
}

type Handler struct {
	service splitsService
	metrics *metrics.Manager
}

func NewHandler(service splitsService, metrics *metrics.Manager) *Handler {
	return &Handler{
		service: service,
		metrics: metrics,
	}
}

func (handler *Handler) HandleNewSplit(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.splits.new")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req NewSplitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("new split, unmarshal json params: %s", err)
		http.Error(w, "add split failed", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "error, split name empty", http.StatusBadRequest)
		return
	}
	if req.DayCount < 1 {
		http.Error(w, "error, day count must be at least 1", http.StatusBadRequest)
		return
	}

	split, err := handler.service.NewSplit(ctx, req.Name, req.DayCount)
	if err != nil {
		log.Errorf("failed to add new split [%s]: %s", req.Name, err)
		http.Error(w, "error, failed to add new split", http.StatusInternalServerError)
		return
	}

	log.Debugf("new split added: [%s] with %d days: %s", split.Name, len(split.Days), split.ID)

	splitJson, err := json.Marshal(split)
	if err != nil {
		log.Errorf("failed to marshal new split: %s", err)
		http.Error(w, "error, failed to add new split", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, splitJson, http.StatusCreated)
}

func (handler *Handler) HandleGetSplit(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.splits.get")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	split, err := handler.service.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSplitNotFound) {
			http.Error(w, "split not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get split %s: %s", id, err)
		http.Error(w, "failed to get split", http.StatusInternalServerError)
		return
	}

	splitJson, err := json.Marshal(split)
	if err != nil {
		log.Errorf("failed to marshal split: %s", err)
		http.Error(w, "failed to marshal split", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, splitJson, http.StatusOK)
}

func (handler *Handler) HandleGetActiveSplit(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.splits.getactive")
	defer span.End()

	split, err := handler.service.GetActive(ctx)
	if err != nil {
		// no active split is a regular state, the client shows the setup screen
		if errors.Is(err, ErrSplitNotFound) {
			pkg.WriteResponseBytes(w, pkg.ContentType.JSON, []byte("null"), http.StatusOK)
			return
		}
		log.Errorf("failed to get active split: %s", err)
		http.Error(w, "failed to get active split", http.StatusInternalServerError)
		return
	}

	splitJson, err := json.Marshal(split)
	if err != nil {
		log.Errorf("failed to marshal active split: %s", err)
		http.Error(w, "failed to marshal active split", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, splitJson, http.StatusOK)
}

func (handler *Handler) HandleListSplits(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.splits.list")
	defer span.End()

	splitsList, err := handler.service.List(ctx)
	if err != nil {
		log.Errorf("list splits error: %s", err)
		http.Error(w, "failed to get splits", http.StatusInternalServerError)
		return
	}

	listResponseJson, err := json.Marshal(SplitsListResponse{
		Splits: splitsList,
		Total:  len(splitsList),
	})
	if err != nil {
		log.Errorf("marshal splits error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listResponseJson, http.StatusOK)
}

func (handler *Handler) HandleRenameSplit(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.splits.rename")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	var req RenameSplitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("rename split, unmarshal json params: %s", err)
		http.Error(w, "rename split failed", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "error, split name empty", http.StatusBadRequest)
		return
	}

	if err := handler.service.Rename(ctx, id, req.Name); err != nil {
		if errors.Is(err, ErrSplitNotFound) {
			http.Error(w, "split not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to rename split %s: %s", id, err)
		http.Error(w, "error, failed to rename split", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "renamed")
}

func (handler *Handler) HandleDeleteSplit(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.splits.delete")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrSplitNotFound) {
			http.Error(w, "split not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete split %s: %s", id, err)
		http.Error(w, "split not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeletedResponse{DeletedID: id})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) HandleActivateSplit(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.splits.activate")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	if err := handler.service.Activate(ctx, id); err != nil {
		if errors.Is(err, ErrSplitNotFound) {
			http.Error(w, "split not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to activate split %s: %s", id, err)
		http.Error(w, "error, failed to activate split", http.StatusInternalServerError)
		return
	}

	log.Debugf("split activated: %s", id)
	pkg.WriteTextResponseOK(w, "activated")
}

func (handler *Handler) HandleAddExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.splits.addexercise")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	dayID := mux.Vars(r)["id"]
	if dayID == "" {
		http.Error(w, "error, day id empty", http.StatusBadRequest)
		return
	}

	var req AddExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("add exercise, unmarshal json params: %s", err)
		http.Error(w, "add exercise failed", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.MuscleGroup == "" {
		http.Error(w, "error, exercise name or muscle group empty", http.StatusBadRequest)
		return
	}

	exercise, created, err := handler.service.AddExercise(ctx, dayID, AddExerciseParams{
		Name:        req.Name,
		RepGoal:     req.RepGoal,
		MuscleGroup: MuscleGroup(req.MuscleGroup),
	})
	if err != nil {
		if errors.Is(err, ErrDayNotFound) {
			http.Error(w, "day not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to add exercise [%s] to day %s: %s", req.Name, dayID, err)
		http.Error(w, "error, failed to add exercise", http.StatusBadRequest)
		return
	}

	if created {
		handler.metrics.CounterExercisesCreated.Inc()
		log.Debugf("new exercise added: [%s] [%s]: %s", exercise.MuscleGroup, exercise.Name, exercise.ID)
	} else {
		log.Debugf("exercise [%s] already in day %s, returning existing", req.Name, dayID)
	}

	respJson, err := json.Marshal(AddExerciseResponse{
		Exercise: exercise,
		Created:  created,
	})
	if err != nil {
		log.Errorf("failed to marshal add exercise response: %s", err)
		http.Error(w, "error, failed to add exercise", http.StatusInternalServerError)
		return
	}

	statusCode := http.StatusOK
	if created {
		statusCode = http.StatusCreated
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, statusCode)
}

func (handler *Handler) HandleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.splits.deleteexercise")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	if err := handler.service.DeleteExercise(ctx, id); err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			http.Error(w, "exercise not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete exercise %s: %s", id, err)
		http.Error(w, "exercise not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeletedResponse{DeletedID: id})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) HandleExerciseDone(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.splits.exercisedone")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	exercise, next, err := handler.service.MarkExerciseDone(ctx, id)
	if err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			http.Error(w, "exercise not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to mark exercise %s done: %s", id, err)
		http.Error(w, "error, failed to mark exercise done", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(ExerciseDoneResponse{
		Exercise: exercise,
		Next:     next,
	})
	if err != nil {
		log.Errorf("failed to marshal exercise done response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleAddSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.splits.addset")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	exerciseID := mux.Vars(r)["id"]
	if exerciseID == "" {
		http.Error(w, "error, exercise id empty", http.StatusBadRequest)
		return
	}

	var params AddSetParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		log.Errorf("add set, unmarshal json params: %s", err)
		http.Error(w, "add set failed", http.StatusBadRequest)
		return
	}
	params.ExerciseID = exerciseID

	set, err := handler.service.AddSet(ctx, params)
	if err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			http.Error(w, "exercise not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to add set to exercise %s: %s", exerciseID, err)
		http.Error(w, "error, failed to add set", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterSetsLogged.Inc()

	setJson, err := json.Marshal(set)
	if err != nil {
		log.Errorf("failed to marshal new set: %s", err)
		http.Error(w, "error, failed to add set", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, setJson, http.StatusCreated)
}

func (handler *Handler) HandleUpdateSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.splits.updateset")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	var set Set
	if err := json.NewDecoder(r.Body).Decode(&set); err != nil {
		log.Errorf("update set, unmarshal json params: %s", err)
		http.Error(w, "update set failed", http.StatusBadRequest)
		return
	}
	set.ID = id

	if err := handler.service.UpdateSet(ctx, &set); err != nil {
		if errors.Is(err, ErrSetNotFound) {
			http.Error(w, "set not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to update set %s: %s", id, err)
		http.Error(w, "error, failed to update set", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "updated")
}

func (handler *Handler) HandleDeleteSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.splits.deleteset")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	if err := handler.service.DeleteSet(ctx, id); err != nil {
		if errors.Is(err, ErrSetNotFound) {
			http.Error(w, "set not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete set %s: %s", id, err)
		http.Error(w, "set not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeletedResponse{DeletedID: id})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) HandleGetCursor(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.splits.getcursor")
	defer span.End()

	cursor, err := handler.service.GetCursor(ctx)
	if err != nil {
		log.Errorf("failed to get day cursor: %s", err)
		http.Error(w, "failed to get day cursor", http.StatusInternalServerError)
		return
	}

	cursorJson, err := json.Marshal(cursor)
	if err != nil {
		log.Errorf("failed to marshal day cursor: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, cursorJson, http.StatusOK)
}

func (handler *Handler) HandleAdvanceCursor(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.splits.advancecursor")
	defer span.End()

	cursor, err := handler.service.AdvanceCursor(ctx)
	if err != nil {
		log.Errorf("failed to advance day cursor: %s", err)
		http.Error(w, "failed to advance day cursor", http.StatusInternalServerError)
		return
	}

	cursorJson, err := json.Marshal(cursor)
	if err != nil {
		log.Errorf("failed to marshal day cursor: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, cursorJson, http.StatusOK)
}
