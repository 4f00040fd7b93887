package responder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

const DefaultTimeout = 30 * time.Second

var (
	// ErrUnavailable means the generator has not finished initialising.
	ErrUnavailable = errors.New("generative responder is not ready")
	// ErrRequest covers every failed completion: transport, upstream status,
	// malformed or empty output and timeouts.
	ErrRequest = errors.New("generative responder request failed")
)

// Generator is a remote text-completion backend.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	ModelName() string
}

// Initializer builds the Generator. It may block on network I/O.
type Initializer func(ctx context.Context) (Generator, error)

type IResponder interface {
	Complete(ctx context.Context, message string) (string, error)
	Ready() bool
}

type Responder struct {
	log     *logrus.Logger
	init    Initializer
	timeout time.Duration

	once  sync.Once
	ready atomic.Bool
	// gen is written once before ready is set and only read after ready is observed.
	gen Generator
}

func New(log *logrus.Logger, timeout time.Duration, init Initializer) *Responder {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Responder{
		log:     log,
		init:    init,
		timeout: timeout,
	}
}

// Start runs the initializer in the background and returns immediately.
func (r *Responder) Start(ctx context.Context) {
	go func() {
		_ = r.Init(ctx)
	}()
}

// Init runs the initializer synchronously. Only the first call does any work.
func (r *Responder) Init(ctx context.Context) error {
	var initErr error
	r.once.Do(func() {
		r.log.Info("Initializing generative model...")

		gen, err := r.init(ctx)
		if err != nil {
			initErr = err
			r.log.WithFields(logrus.Fields{
				"error": err.Error(),
			}).Error("Failed to initialize generative model")
			return
		}

		r.gen = gen
		r.ready.Store(true)
		r.log.WithFields(logrus.Fields{
			"model": gen.ModelName(),
		}).Info("Generative model loaded, responder is ready")
	})
	return initErr
}

func (r *Responder) Ready() bool {
	return r.ready.Load()
}

// Complete sends message wrapped in the assistant prompt. It never waits for
// initialisation: an unready responder fails fast with ErrUnavailable.
func (r *Responder) Complete(ctx context.Context, message string) (string, error) {
	if !r.ready.Load() {
		return "", ErrUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	text, err := r.gen.GenerateText(ctx, BuildPrompt(message))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRequest, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: empty completion", ErrRequest)
	}

	return text, nil
}

// Close releases the generator when it holds resources of its own. A responder
// that never became ready has nothing to release.
func (r *Responder) Close() error {
	if !r.ready.Load() {
		return nil
	}
	if c, ok := r.gen.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
