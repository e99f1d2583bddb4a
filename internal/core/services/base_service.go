package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/carbonx_exchange/internal/core/domain"
	portsrepo "github.com/SscSPs/carbonx_exchange/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/carbonx_exchange/internal/core/ports/services"
	"github.com/SscSPs/carbonx_exchange/internal/middleware"
	"github.com/SscSPs/carbonx_exchange/internal/platform/metrics"
	"github.com/go-playground/validator/v10"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// ledgerService carries the dependencies shared by every service that
// mutates the ledger. All of them must share one EntityLocks so that a
// cancel, a purchase and a deposit touching the same entity serialize.
type ledgerService struct {
	BaseService
	store     portsrepo.LedgerStoreFacade
	publisher portssvc.EventPublisher
	locks     *EntityLocks
	metrics   *metrics.Metrics
	validate  *validator.Validate
	now       func() time.Time
}

// ServiceOption is a functional option for configuring the ledger services
type ServiceOption func(*ledgerService)

// WithPublisher sets where committed changes are announced.
func WithPublisher(p portssvc.EventPublisher) ServiceOption {
	return func(s *ledgerService) {
		s.publisher = p
	}
}

// WithEntityLocks shares a lock table between services.
func WithEntityLocks(l *EntityLocks) ServiceOption {
	return func(s *ledgerService) {
		s.locks = l
	}
}

// WithMetrics records outcomes on m.
func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *ledgerService) {
		s.metrics = m
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *ledgerService) {
		s.now = now
	}
}

func newLedgerService(store portsrepo.LedgerStoreFacade, options ...ServiceOption) ledgerService {
	svc := ledgerService{
		store:     store,
		publisher: discardPublisher{},
		locks:     NewEntityLocks(),
		validate:  newValidator(),
		now:       domain.Now,
	}
	for _, option := range options {
		option(&svc)
	}
	return svc
}

// publish announces events in order. Callers hold the entity locks of
// everything the events describe.
func (s *ledgerService) publish(events ...domain.Event) {
	for _, ev := range events {
		s.publisher.Publish(ev)
	}
}

type discardPublisher struct{}

func (discardPublisher) Publish(domain.Event) {}
