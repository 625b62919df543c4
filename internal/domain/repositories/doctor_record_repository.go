package repositories

import (
	"context"

	"github.com/zatekoja/ncrm/internal/domain/entities"
)

// DoctorRecordRepository persists the phones and notes of every doctor.
type DoctorRecordRepository interface {
	Load(ctx context.Context) ([]*entities.DoctorRecord, error)
	Save(ctx context.Context, records []*entities.DoctorRecord) error
}
