package filestore

import (
	"context"

	"github.com/spf13/afero"
	"github.com/zatekoja/ncrm/internal/domain/entities"
	"github.com/zatekoja/ncrm/internal/domain/repositories"
)

// DoctorRecordAdapter stores doctor phones and notes in a single JSON file.
type DoctorRecordAdapter struct {
	doc document
}

// NewDoctorRecordAdapter creates a record adapter for the file at path.
func NewDoctorRecordAdapter(fs afero.Fs, path string) repositories.DoctorRecordRepository {
	return &DoctorRecordAdapter{doc: document{fs: fs, path: path}}
}

// Load reads every record. A missing file loads as no records.
func (a *DoctorRecordAdapter) Load(ctx context.Context) ([]*entities.DoctorRecord, error) {
	var records []*entities.DoctorRecord
	if err := a.doc.read(ctx, &records); err != nil {
		return nil, err
	}
	if err := entities.CheckRecords(records); err != nil {
		return nil, a.doc.parseError(err)
	}
	if records == nil {
		records = []*entities.DoctorRecord{}
	}
	for _, r := range records {
		if r.Phones == nil {
			r.Phones = []string{}
		}
		if r.Notes == nil {
			r.Notes = []entities.Note{}
		}
	}
	return records, nil
}

// Save overwrites the file with the given records.
func (a *DoctorRecordAdapter) Save(ctx context.Context, records []*entities.DoctorRecord) error {
	if records == nil {
		records = []*entities.DoctorRecord{}
	}
	return a.doc.write(ctx, records)
}
