package filestore

import (
	"context"

	"github.com/spf13/afero"
	"github.com/zatekoja/ncrm/internal/domain/entities"
	"github.com/zatekoja/ncrm/internal/domain/repositories"
)

// HospitalAdapter stores the hospital forest in a single JSON file.
type HospitalAdapter struct {
	doc document
}

// NewHospitalAdapter creates a hospital adapter for the file at path.
func NewHospitalAdapter(fs afero.Fs, path string) repositories.HospitalRepository {
	return &HospitalAdapter{doc: document{fs: fs, path: path}}
}

// Load reads the whole forest. A missing file loads as an empty forest; a
// null hospital or doctor entry fails the load.
func (a *HospitalAdapter) Load(ctx context.Context) ([]*entities.Hospital, error) {
	var hospitals []*entities.Hospital
	if err := a.doc.read(ctx, &hospitals); err != nil {
		return nil, err
	}
	if err := entities.CheckForest(hospitals); err != nil {
		return nil, a.doc.parseError(err)
	}
	if hospitals == nil {
		hospitals = []*entities.Hospital{}
	}
	return hospitals, nil
}

// Save overwrites the file with the given forest.
func (a *HospitalAdapter) Save(ctx context.Context, hospitals []*entities.Hospital) error {
	if hospitals == nil {
		hospitals = []*entities.Hospital{}
	}
	return a.doc.write(ctx, hospitals)
}
