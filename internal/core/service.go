package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"rostercore/internal/blob"
	"rostercore/internal/infra/persistence/memory"
	"rostercore/pkg/domain"
)

// Service is the single serializing boundary around the store and history:
// one command runs at a time, so undo/redo ordering always matches the order
// commands were applied.
type Service struct {
	mu      sync.Mutex
	store   domain.PersistentStore
	history *History
	groups  *GroupAllocator
	blobs   blob.Store
	logger  Logger
	metrics MetricsRecorder
	tracer  Tracer
	clock   Clock
	plugins map[string]PluginMetadata
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the structured logger.
func WithLogger(l Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetricsRecorder sets the per-command metrics sink.
func WithMetricsRecorder(m MetricsRecorder) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithTracer sets the per-command tracer.
func WithTracer(t Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithClock overrides the time source used for durations and export keys.
func WithClock(c Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithBlobStore enables export and import.
func WithBlobStore(b blob.Store) Option {
	return func(s *Service) { s.blobs = b }
}

// WithGroupAllocator replaces the process-wide group allocator.
func WithGroupAllocator(g *GroupAllocator) Option {
	return func(s *Service) {
		if g != nil {
			s.groups = g
		}
	}
}

// NewService constructs a service backed by the supplied store.
func NewService(store domain.PersistentStore, opts ...Option) *Service {
	s := &Service{
		store:   store,
		history: NewHistory(),
		groups:  DefaultGroups(),
		logger:  noopLogger{},
		metrics: noopMetrics{},
		tracer:  noopTracer{},
		clock:   systemClock{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewInMemoryService creates a service over a fresh in-memory store.
func NewInMemoryService(engine *RulesEngine, opts ...Option) *Service {
	return NewService(memory.NewStore(engine), opts...)
}

// Store returns the underlying storage implementation.
func (s *Service) Store() domain.PersistentStore { return s.store }

// History returns the undo/redo ledger.
func (s *Service) History() *History { return s.history }

// Groups returns the allocator commands should draw group numbers from.
func (s *Service) Groups() *GroupAllocator { return s.groups }

// Execute runs cmd against the store. A successful reversible command is
// registered in history; any successful mutation is persisted before return.
func (s *Service) Execute(ctx context.Context, cmd Command) (res CommandResult, err error) {
	if cmd == nil {
		return CommandResult{}, fmt.Errorf("command cannot be nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	op := cmd.Word()
	start := s.clock.Now()
	ctx, span := s.tracer.Start(ctx, op)
	defer func() {
		span.End(err)
		s.metrics.Observe(ctx, op, err == nil, s.clock.Now().Sub(start))
	}()

	env := &Env{Model: s.store, History: s.history, Groups: s.groups, Blobs: s.blobs, Clock: s.clock}
	res, err = cmd.Execute(ctx, env)
	if err != nil {
		s.logFailure(op, err)
		return CommandResult{}, err
	}
	if rc, ok := cmd.(ReversibleCommand); ok {
		s.history.Register(rc)
	}
	if res.Changed {
		if perr := s.store.Persist(ctx); perr != nil {
			s.logger.Error("persist failed", "command", op, "error", perr)
			return res, fmt.Errorf("persist after %s: %w", op, perr)
		}
	}
	s.logger.Debug("command executed", "command", op, "changed", res.Changed,
		"undo_depth", s.history.UndoDepth(), "redo_depth", s.history.RedoDepth())
	return res, nil
}

func (s *Service) logFailure(op string, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrInvariant),
		errors.Is(err, domain.ErrHistoryEmpty):
		s.logger.Warn("command rejected", "command", op, "error", err)
	default:
		s.logger.Error("command failed", "command", op, "error", err)
	}
}

// FilteredPersons returns the current filtered view.
func (s *Service) FilteredPersons() []*domain.Person {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.FilteredPersons()
}

// Events returns the event list.
func (s *Service) Events() []*domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Events()
}

// Close releases the store.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Close()
}
