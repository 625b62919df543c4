package providers

import (
	"context"
	"strings"

	"github.com/zatekoja/ncrm/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.DirectoryEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.DirectoryEvent, error)

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannel constants for directory events
const (
	// EventChannelDirectoryUpdates is the channel for all directory changes
	EventChannelDirectoryUpdates = "directory:updates"

	// EventChannelHospitalPrefix is the prefix for hospital-specific channels
	EventChannelHospitalPrefix = "hospital:"
)

// GetHospitalChannel returns the channel name for a specific hospital.
// Hospital names are case-insensitive, so the channel is lowercased.
func GetHospitalChannel(hospital string) string {
	return EventChannelHospitalPrefix + strings.ToLower(hospital)
}
