package worker

import (
	"context"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/noah-isme/radio-cms-api/internal/models"
	"github.com/noah-isme/radio-cms-api/internal/onair"
)

// DefaultPollSpec is used when the configured cron spec does not parse.
const DefaultPollSpec = "@every 10s"

type statusSource interface {
	Status(ctx context.Context) (*models.OnAirStatus, error)
}

type kindRecorder interface {
	SetOnAirKind(kind onair.Kind, changed bool)
}

// OnAirWatcher re-resolves the on-air program on a cron schedule and reports
// transitions to the metrics gauge and the log.
type OnAirWatcher struct {
	source   statusSource
	recorder kindRecorder
	logger   *zap.Logger
	spec     string

	mu      sync.Mutex
	last    string
	started bool

	cron   *cron.Cron
	runCtx context.Context
	cancel context.CancelFunc
}

// NewOnAirWatcher creates a watcher. spec is a robfig/cron expression such as "@every 10s".
func NewOnAirWatcher(source statusSource, recorder kindRecorder, logger *zap.Logger, spec string) *OnAirWatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if spec == "" {
		spec = DefaultPollSpec
	}
	return &OnAirWatcher{source: source, recorder: recorder, logger: logger, spec: spec}
}

// Start runs one evaluation immediately and schedules the rest.
func (w *OnAirWatcher) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	if _, err := c.AddFunc(w.spec, func() { w.RunOnce(w.runCtx) }); err != nil {
		w.logger.Warn("onair.watcher: invalid poll spec; falling back to default", zap.String("spec", w.spec), zap.Error(err))
		c = cron.New()
		_, _ = c.AddFunc(DefaultPollSpec, func() { w.RunOnce(w.runCtx) })
	}
	w.RunOnce(w.runCtx)
	c.Start()
	w.cron = c
}

// Stop cancels the schedule and waits for a running evaluation.
func (w *OnAirWatcher) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
}

// RunOnce resolves the current status and records it.
func (w *OnAirWatcher) RunOnce(ctx context.Context) {
	status, err := w.source.Status(ctx)
	if err != nil {
		w.logger.Warn("onair.watcher: status evaluation failed", zap.Error(err))
		return
	}

	current := status.Kind.String() + "|" + status.Message
	w.mu.Lock()
	changed := w.started && current != w.last
	first := !w.started
	w.last = current
	w.started = true
	w.mu.Unlock()

	if w.recorder != nil {
		w.recorder.SetOnAirKind(status.Kind, changed)
	}
	switch {
	case first:
		w.logger.Info("onair.watcher: initial program", zap.Stringer("kind", status.Kind), zap.String("program", status.Message))
	case changed:
		w.logger.Info("onair.watcher: program changed", zap.Stringer("kind", status.Kind), zap.String("program", status.Message))
	}
}
