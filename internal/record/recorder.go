package record

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vaani-ai/vaani/pkg/models"
)

// ChunkSource supplies fixed-duration chunks of mono 16 kHz samples from a
// continuous capture. Sources return io.EOF when the capture ends. Concrete
// capture devices live outside this module; anything that can hand over
// sample chunks plugs in here.
type ChunkSource interface {
	ReadChunk(ctx context.Context) ([]float32, error)
}

// Processor runs one chunk through the translation pipeline.
type Processor interface {
	ProcessSamples(ctx context.Context, sess *models.Session, samples []float32) *models.ProcessResult
}

// DefaultReceiveTimeout is how long the consumer waits for a chunk before
// rechecking the stop flag.
const DefaultReceiveTimeout = 500 * time.Millisecond

// Recorder connects a continuous chunk producer to the pipeline through a
// bounded queue. The producer and consumer run independently; stopping is
// cooperative and happens between chunks, never mid-operation.
type Recorder struct {
	processor      Processor
	sess           *models.Session
	chunks         chan []float32
	stop           chan struct{}
	stopOnce       sync.Once
	wg             sync.WaitGroup
	receiveTimeout time.Duration
	log            *zap.Logger
}

// NewRecorder creates a Recorder for one session with the given queue bound.
func NewRecorder(processor Processor, sess *models.Session, queueSize int, logger *zap.Logger) *Recorder {
	if queueSize <= 0 {
		queueSize = 8
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{
		processor:      processor,
		sess:           sess,
		chunks:         make(chan []float32, queueSize),
		stop:           make(chan struct{}),
		receiveTimeout: DefaultReceiveTimeout,
		log:            logger.With(zap.String("component", "record"), zap.String("session", sess.ID)),
	}
}

// Start launches the producer and consumer goroutines.
func (r *Recorder) Start(ctx context.Context, source ChunkSource) {
	r.log.Info("recording started")

	r.wg.Add(1)
	go r.produce(ctx, source)

	r.wg.Add(1)
	go r.consume(ctx)
}

// Stop flips the stop flag and waits for both goroutines with a bounded
// timeout. The session is left in a stable terminal status either way.
func (r *Recorder) Stop(timeout time.Duration) error {
	r.stopOnce.Do(func() { close(r.stop) })

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	var err error
	select {
	case <-done:
	case <-time.After(timeout):
		err = fmt.Errorf("recorder did not stop within %s", timeout)
	}

	r.sess.Status = models.StatusDone
	r.log.Info("recording stopped")
	return err
}

// produce reads chunks from the source and enqueues them until the source
// ends or the recorder stops.
func (r *Recorder) produce(ctx context.Context, source ChunkSource) {
	defer r.wg.Done()

	for {
		select {
		case <-r.stop:
			return
		default:
		}

		chunk, err := source.ReadChunk(ctx)
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
				r.log.Error("chunk read failed", zap.Error(err))
			}
			return
		}
		if len(chunk) == 0 {
			continue
		}

		select {
		case r.chunks <- chunk:
		case <-r.stop:
			return
		}
	}
}

// consume drains the queue and runs the pipeline per chunk. An empty queue
// is tolerated by waiting up to the receive timeout and then rechecking the
// stop flag, which keeps shutdown prompt.
func (r *Recorder) consume(ctx context.Context) {
	defer r.wg.Done()

	timer := time.NewTimer(r.receiveTimeout)
	defer timer.Stop()

	for {
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(r.receiveTimeout)

		select {
		case <-r.stop:
			return
		case chunk := <-r.chunks:
			result := r.processor.ProcessSamples(ctx, r.sess, chunk)
			if result.Status == models.StatusError {
				r.log.Warn("chunk processing failed", zap.String("message", result.Message))
			}
		case <-timer.C:
			// Recheck the stop flag on the next loop iteration.
		}
	}
}
