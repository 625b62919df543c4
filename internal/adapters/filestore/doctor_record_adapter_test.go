package filestore_test

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/ncrm/internal/adapters/filestore"
	"github.com/zatekoja/ncrm/internal/domain/entities"
	apperrors "github.com/zatekoja/ncrm/pkg/errors"
)

func TestDoctorRecordAdapter_RoundTrip(t *testing.T) {
	ctx := context.Background()
	adapter := filestore.NewDoctorRecordAdapter(afero.NewMemMapFs(), "/data/doctor_notes.json")

	records := []*entities.DoctorRecord{
		{
			Doctor:   "Dr. Adeyemi",
			Hospital: "General Hospital",
			Phones:   []string{"0801", "0802"},
			Notes:    []entities.Note{{Date: "1/2/2025", Desc: "first visit"}, {Date: "3/2/2025", Desc: "follow up"}},
		},
		entities.NewDoctorRecord("Dr. Bello", "General Hospital"),
	}
	require.NoError(t, adapter.Save(ctx, records))

	loaded, err := adapter.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, loaded)
}

func TestDoctorRecordAdapter_MissingFieldsBecomeEmptyLists(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/doctor_notes.json", []byte(`[{"doctor":"A","hospital":"H"}]`), 0o644))

	records, err := filestore.NewDoctorRecordAdapter(fs, "/doctor_notes.json").Load(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{}, records[0].Phones)
	assert.Equal(t, []entities.Note{}, records[0].Notes)
}

func TestDoctorRecordAdapter_MissingFileLoadsEmpty(t *testing.T) {
	records, err := filestore.NewDoctorRecordAdapter(afero.NewMemMapFs(), "/nope.json").Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDoctorRecordAdapter_MalformedJSONFailsLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/doctor_notes.json", []byte(`{"doctor":"not an array"}`), 0o644))

	_, err := filestore.NewDoctorRecordAdapter(fs, "/doctor_notes.json").Load(context.Background())

	assert.Error(t, err)
}

func TestDoctorRecordAdapter_NullRecordFailsLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/doctor_notes.json", []byte(`[{"doctor":"A","hospital":"H"},null]`), 0o644))

	_, err := filestore.NewDoctorRecordAdapter(fs, "/doctor_notes.json").Load(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
	assert.Contains(t, err.Error(), "record #1 is null")
}
