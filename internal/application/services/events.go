package services

import (
	"context"

	"github.com/zatekoja/ncrm/internal/domain/entities"
	"github.com/zatekoja/ncrm/internal/domain/providers"
	"github.com/zatekoja/ncrm/internal/infrastructure/observability"
)

// eventPublisher is embedded by services that announce changes. A nil bus
// disables publication.
type eventPublisher struct {
	eventBus providers.EventBus
}

// SetEventBus sets the event bus for publishing directory changes
func (p *eventPublisher) SetEventBus(eventBus providers.EventBus) {
	p.eventBus = eventBus
}

// publish sends the event to the global channel and, when the event names a
// hospital, to that hospital's channel. Failures are logged and swallowed:
// the files are already written at this point.
func (p *eventPublisher) publish(ctx context.Context, event *entities.DirectoryEvent) {
	if p.eventBus == nil {
		return
	}

	logger := observability.LoggerFromContext(ctx)
	if err := p.eventBus.Publish(ctx, providers.EventChannelDirectoryUpdates, event); err != nil {
		logger.Warn().Err(err).Str("event_type", string(event.EventType)).Msg("failed to publish directory event")
	}
	p.publishHospital(ctx, event.Hospital, event)
}

// publishHospital sends the event to one hospital's channel only.
func (p *eventPublisher) publishHospital(ctx context.Context, hospital string, event *entities.DirectoryEvent) {
	if p.eventBus == nil || hospital == "" {
		return
	}
	if err := p.eventBus.Publish(ctx, providers.GetHospitalChannel(hospital), event); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("hospital", hospital).Msg("failed to publish hospital event")
	}
}
