package repositories

import (
	"context"

	"github.com/zatekoja/ncrm/internal/domain/entities"
)

// HospitalRepository persists the whole hospital forest as one document.
type HospitalRepository interface {
	// Load returns every hospital. A store that was never written loads as empty.
	Load(ctx context.Context) ([]*entities.Hospital, error)

	// Save replaces the stored forest.
	Save(ctx context.Context, hospitals []*entities.Hospital) error
}
