package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/events"
)

// AuditService writes an audit trail entry for every account event. It is a
// pure event consumer: it never influences the operation that published.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger.Named("audit")}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventUserRegistered, a.handle)
	a.dispatcher.Subscribe(events.EventUserUpdated, a.handle)
	a.dispatcher.Subscribe(events.EventUserDeactivated, a.handle)
	a.dispatcher.Subscribe(events.EventUserLoggedIn, a.handle)
}

func (a *AuditService) handle(_ context.Context, event events.Event) error {
	a.logger.Info(string(event.Type),
		zap.String("user_id", event.UserID),
		zap.Time("at", event.Timestamp),
		zap.Any("payload", event.Payload))
	return nil
}
