package filestore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/ncrm/internal/adapters/filestore"
	"github.com/zatekoja/ncrm/internal/domain/entities"
	apperrors "github.com/zatekoja/ncrm/pkg/errors"
)

func sampleForest() []*entities.Hospital {
	chief := entities.NewDoctor("Dr. Adeyemi", "Cardiologist", "Ikeja")
	resident := entities.NewDoctor("Dr. Bello", "Resident", "Yaba")
	resident.ReferredDoctors = append(resident.ReferredDoctors, entities.NewDoctor("Dr. Chukwu", "Surgeon", "Lekki"))
	chief.ReferredDoctors = append(chief.ReferredDoctors, resident)

	general := entities.NewHospital("General Hospital")
	general.Doctors = append(general.Doctors, chief)

	return []*entities.Hospital{general, entities.NewHospital("St. Mary")}
}

func TestHospitalAdapter_MissingFileLoadsEmpty(t *testing.T) {
	adapter := filestore.NewHospitalAdapter(afero.NewMemMapFs(), "/data/hospital_data.json")

	hospitals, err := adapter.Load(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, hospitals)
	assert.Empty(t, hospitals)
}

func TestHospitalAdapter_RoundTrip(t *testing.T) {
	ctx := context.Background()
	adapter := filestore.NewHospitalAdapter(afero.NewMemMapFs(), "/data/hospital_data.json")

	forest := sampleForest()
	require.NoError(t, adapter.Save(ctx, forest))

	loaded, err := adapter.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, forest, loaded)
}

func TestHospitalAdapter_RoundTripOnDisk(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "hospital_data.json")
	adapter := filestore.NewHospitalAdapter(afero.NewOsFs(), path)

	forest := sampleForest()
	require.NoError(t, adapter.Save(ctx, forest))
	require.NoError(t, adapter.Save(ctx, forest[:1]))

	loaded, err := adapter.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, forest[:1], loaded)

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(path), "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches, "temp files must not be left behind")
}

func TestHospitalAdapter_WritesArraysNotNull(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	adapter := filestore.NewHospitalAdapter(fs, "/hospital_data.json")

	require.NoError(t, adapter.Save(ctx, []*entities.Hospital{
		{Name: "Bare", Doctors: []*entities.Doctor{{Name: "Dr. Nil", Role: "GP", Address: "Home"}}},
	}))

	data, err := afero.ReadFile(fs, "/hospital_data.json")
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"name":"Bare","doctors":[{"name":"Dr. Nil","role":"GP","address":"Home","referredDoctors":[]}]}]`,
		string(data))
}

func TestHospitalAdapter_ReadsNestedReferrals(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := `[{"name":"General","doctors":[{"name":"A","role":"GP","address":"X","referredDoctors":[{"name":"B","role":"Nurse","address":"Y","referredDoctors":[]}]}]}]`
	require.NoError(t, afero.WriteFile(fs, "/hospital_data.json", []byte(content), 0o644))

	hospitals, err := filestore.NewHospitalAdapter(fs, "/hospital_data.json").Load(context.Background())

	require.NoError(t, err)
	require.Len(t, hospitals, 1)
	require.Len(t, hospitals[0].Doctors, 1)
	assert.Equal(t, "B", hospitals[0].Doctors[0].ReferredDoctors[0].Name)
	assert.NotNil(t, hospitals[0].Doctors[0].ReferredDoctors[0].ReferredDoctors)
}

func TestHospitalAdapter_MalformedJSONFailsLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/hospital_data.json", []byte(`[{"name":`), 0o644))

	_, err := filestore.NewHospitalAdapter(fs, "/hospital_data.json").Load(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
}

func TestHospitalAdapter_BlankFileLoadsEmpty(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/hospital_data.json", []byte("  \n"), 0o644))

	hospitals, err := filestore.NewHospitalAdapter(fs, "/hospital_data.json").Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, hospitals)
}

func TestHospitalAdapter_NullEntriesFailLoad(t *testing.T) {
	documents := map[string]string{
		"hospital": `[null]`,
		"doctor":   `[{"name":"H","doctors":[null]}]`,
		"referral": `[{"name":"H","doctors":[{"name":"A","role":"GP","address":"X","referredDoctors":[null]}]}]`,
	}

	for name, data := range documents {
		t.Run(name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "/hospital_data.json", []byte(data), 0o644))

			hospitals, err := filestore.NewHospitalAdapter(fs, "/hospital_data.json").Load(context.Background())

			require.Error(t, err)
			assert.Nil(t, hospitals)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
			assert.Contains(t, err.Error(), "null")
		})
	}
}
