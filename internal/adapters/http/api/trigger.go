package api

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/jsvoboda/tipsheet/pkg/logger"
)

// RunHandler triggers the two pipelines and relays their console text.
type RunHandler struct {
	deps Dependencies
	log  logger.Logger
}

// NewRunHandler creates a new run handler.
func NewRunHandler(deps Dependencies) *RunHandler {
	return &RunHandler{
		deps: deps,
		log:  logger.Named("trigger"),
	}
}

// HandleRunMorning handles GET /run-morning: runs extraction and returns
// the captured report as text/plain.
func (h *RunHandler) HandleRunMorning(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "extraction", h.deps.RunExtraction)
}

// HandleRunEvening handles GET /run-evening: runs evaluation and returns
// the captured report as text/plain.
func (h *RunHandler) HandleRunEvening(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "evaluation", h.deps.RunEvaluation)
}

// run executes one pipeline as an opaque unit. The report is buffered so
// a failing run still returns whatever output it produced before the
// failure, after the error line.
func (h *RunHandler) run(w http.ResponseWriter, r *http.Request, name string, pipeline func(context.Context, io.Writer) error) {
	if r.Method != http.MethodGet {
		writeText(w, http.StatusMethodNotAllowed, "method not allowed\n")
		return
	}

	runID := uuid.NewString()
	ctx := r.Context()
	h.log.Info(ctx, "pipeline triggered",
		logger.String("pipeline", name),
		logger.String("run_id", runID),
	)

	var buf bytes.Buffer
	if err := pipeline(ctx, &buf); err != nil {
		h.log.Error(ctx, "pipeline failed",
			logger.String("pipeline", name),
			logger.String("run_id", runID),
			logger.Error(err),
		)
		writeText(w, http.StatusInternalServerError, "error: "+err.Error()+"\n\n"+buf.String())
		return
	}

	h.log.Info(ctx, "pipeline finished",
		logger.String("pipeline", name),
		logger.String("run_id", runID),
	)
	writeText(w, http.StatusOK, buf.String())
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
