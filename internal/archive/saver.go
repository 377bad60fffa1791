package archive

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vaani-ai/vaani/pkg/models"
	"github.com/vaani-ai/vaani/pkg/repository"
)

// Saver archives pipeline results asynchronously through a buffered channel
// so the request path never waits on the database. Persistence is best
// effort: a full buffer or a failed write is logged and dropped.
type Saver struct {
	repo    repository.ResultRepository
	results chan *models.ResultEvent
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	log     *zap.Logger
}

// NewSaver creates a Saver with the given buffer size.
func NewSaver(repo repository.ResultRepository, bufferSize int, logger *zap.Logger) *Saver {
	if bufferSize <= 0 {
		bufferSize = 100
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Saver{
		repo:    repo,
		results: make(chan *models.ResultEvent, bufferSize),
		ctx:     ctx,
		cancel:  cancel,
		log:     logger.With(zap.String("component", "archive")),
	}
}

// Start launches the archive worker.
func (s *Saver) Start() {
	s.wg.Add(1)
	go s.worker()
	s.log.Info("archive saver started")
}

// Stop shuts the worker down and waits for it.
func (s *Saver) Stop() {
	s.cancel()
	s.wg.Wait()
	s.log.Info("archive saver stopped")
}

// Save enqueues a result for archiving without blocking the caller.
func (s *Saver) Save(event *models.ResultEvent) {
	select {
	case s.results <- event:
	case <-s.ctx.Done():
		s.log.Warn("saver stopped, result dropped", zap.String("id", event.ID))
	default:
		s.log.Warn("archive buffer full, result dropped", zap.String("id", event.ID))
	}
}

// worker drains the channel and writes results with a per-write timeout.
func (s *Saver) worker() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			return

		case event, ok := <-s.results:
			if !ok {
				return
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := s.repo.SaveResult(ctx, event); err != nil {
				s.log.Error("result archive failed", zap.String("id", event.ID), zap.Error(err))
			}
			cancel()
		}
	}
}
