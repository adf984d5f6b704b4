package interchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gymly/backend/internal/splits"
	"github.com/gymly/backend/internal/telemetry/metrics"
	"github.com/gymly/backend/internal/telemetry/tracing"
	"github.com/gymly/backend/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type interchangeService interface {
	Export(ctx context.Context, splitID string) (*SplitDocument, error)
	Import(ctx context.Context, doc *SplitDocument) (*splits.Split, error)
}

type Handler struct {
	service interchangeService
	metrics *metrics.Manager
}

func NewHandler(service interchangeService, metrics *metrics.Manager) *Handler {
	return &Handler{
		service: service,
		metrics: metrics,
	}
}

// HandleExport sends the split as a downloadable .gymlysplit file.
func (handler *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.interchange.export")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	doc, err := handler.service.Export(ctx, id)
	if err != nil {
		if errors.Is(err, splits.ErrSplitNotFound) {
			http.Error(w, "split not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to export split %s: %s", id, err)
		http.Error(w, "error, failed to export split", http.StatusInternalServerError)
		return
	}

	docJson, err := json.Marshal(doc)
	if err != nil {
		log.Errorf("failed to marshal split document: %s", err)
		http.Error(w, "error, failed to export split", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFileName(doc.Name)))
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, docJson, http.StatusOK)
}

func (handler *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.interchange.import")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var doc SplitDocument
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		log.Errorf("import split, unmarshal json params: %s", err)
		http.Error(w, "import split failed", http.StatusBadRequest)
		return
	}

	split, err := handler.service.Import(ctx, &doc)
	if err != nil {
		log.Errorf("failed to import split [%s]: %s", doc.Name, err)
		http.Error(w, "error, failed to import split", http.StatusBadRequest)
		return
	}

	handler.metrics.CounterSplitImports.Inc()
	log.Debugf("split imported: [%s] -> %s", split.Name, split.ID)

	splitJson, err := json.Marshal(split)
	if err != nil {
		log.Errorf("failed to marshal imported split: %s", err)
		http.Error(w, "error, failed to import split", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, splitJson, http.StatusCreated)
}
