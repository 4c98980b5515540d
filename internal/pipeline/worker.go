package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/clausemark/clausemark/internal/convert"
	"github.com/clausemark/clausemark/internal/parser"
)

// Worker processes a single conversion job: tokenize the uploaded file
// into a document tree, then run the requested conversion chain.
type Worker struct {
	registry *convert.Registry
	log      *slog.Logger
}

func NewWorker(registry *convert.Registry, log *slog.Logger) *Worker {
	return &Worker{registry: registry, log: log}
}

// Process runs the full conversion for a job. Conversions are pure and
// deterministic, so a failure is final: there is nothing to retry.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Phase 1: Tokenize
	job.SetStatus(StatusTokenizing, "tokenizing")
	p, err := parser.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "tokenizing")
		return
	}

	tree, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("tokenize failed", "error", err)
		job.AddError(fmt.Sprintf("tokenize: %s", err))
		job.SetStatus(StatusFailed, "tokenizing")
		return
	}

	// Phase 2: Convert through the requested chain.
	job.SetStatus(StatusConverting, "converting")
	result, err := w.registry.Run(tree, convert.FormatTree, job.Targets)
	if err != nil {
		log.Error("conversion failed", "targets", job.Targets, "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "converting")
		return
	}

	job.SetResult(result)
	job.SetStatus(StatusCompleted, "done")
	log.Info("conversion completed", "targets", job.Targets)
}
