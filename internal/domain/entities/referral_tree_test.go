package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleForest() []*Hospital {
	bello := NewDoctor("Dr. Bello", "Neurologist", "Yaba")
	bello.ReferredDoctors = append(bello.ReferredDoctors, NewDoctor("Dr. Chukwu", "Surgeon", "Lekki"))
	adeyemi := NewDoctor("Dr. Adeyemi", "Cardiologist", "Ikeja")
	adeyemi.ReferredDoctors = append(adeyemi.ReferredDoctors, bello)

	general := NewHospital("General")
	general.Doctors = append(general.Doctors, adeyemi, NewDoctor("Dr. Eze", "GP", "Surulere"))

	mary := NewHospital("St. Mary")
	mary.Doctors = append(mary.Doctors, NewDoctor("Dr. Okafor", "Pediatrician", "Ikoyi"))

	return []*Hospital{general, mary}
}

func TestFindDoctor(t *testing.T) {
	forest := sampleForest()

	d := FindDoctor(forest[0].Doctors, "DR. CHUKWU")
	require.NotNil(t, d)
	assert.Equal(t, "Surgeon", d.Role)

	assert.Nil(t, FindDoctor(forest[0].Doctors, "Dr. Okafor"))
	assert.Nil(t, FindDoctor(nil, "anyone"))
}

func TestLocateDoctor(t *testing.T) {
	forest := sampleForest()

	d, h := LocateDoctor(forest, "dr. okafor")
	require.NotNil(t, d)
	assert.Equal(t, "St. Mary", h.Name)

	d, h = LocateDoctor(forest, "Dr. Nobody")
	assert.Nil(t, d)
	assert.Nil(t, h)

	assert.True(t, DoctorExists(forest, "dr. bello"))
	assert.True(t, HospitalExists(forest, "st. mary"))
	assert.False(t, HospitalExists(forest, "Mary"))
}

func TestCollectDoctorsPreOrder(t *testing.T) {
	refs := CollectDoctors(sampleForest())

	var names []string
	var depths []int
	for _, ref := range refs {
		names = append(names, ref.Doctor.Name)
		depths = append(depths, ref.Depth)
	}
	assert.Equal(t, []string{"Dr. Adeyemi", "Dr. Bello", "Dr. Chukwu", "Dr. Eze", "Dr. Okafor"}, names)
	assert.Equal(t, []int{0, 1, 2, 0, 0}, depths)
	assert.Equal(t, "St. Mary", refs[4].Hospital)
}

func TestRenameDoctorsExactMatchOnly(t *testing.T) {
	forest := sampleForest()

	assert.Equal(t, 0, RenameDoctors(forest[0].Doctors, "dr. chukwu", "Dr. C"))
	assert.Equal(t, 1, RenameDoctors(forest[0].Doctors, "Dr. Chukwu", "Dr. C"))
	assert.NotNil(t, FindDoctor(forest[0].Doctors, "Dr. C"))
}

func TestFilterHospitals(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		hospitals []string
		roots     [][]string
	}{
		{"empty query keeps everything", "  ", []string{"General", "St. Mary"}, [][]string{{"Dr. Adeyemi", "Dr. Eze"}, {"Dr. Okafor"}}},
		{"deep match keeps root", "lekki", []string{"General"}, [][]string{{"Dr. Adeyemi"}}},
		{"role match", "gp", []string{"General"}, [][]string{{"Dr. Eze"}}},
		{"hospital name match without doctors", "mary", []string{"St. Mary"}, [][]string{{}}},
		{"no match", "dermatology", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forest := sampleForest()
			out := FilterHospitals(forest, tt.query)

			require.Len(t, out, len(tt.hospitals))
			for i, h := range out {
				assert.Equal(t, tt.hospitals[i], h.Name)
				roots := []string{}
				for _, d := range h.Doctors {
					roots = append(roots, d.Name)
				}
				assert.Equal(t, tt.roots[i], roots)
			}
			assert.Len(t, forest[0].Doctors, 2, "input forest is not modified")
		})
	}
}

func TestLabelRoundTrip(t *testing.T) {
	d := NewDoctor("Dr. Adeyemi", "Cardiologist", "Ikeja")

	label := d.Label("General")
	assert.Equal(t, "Dr. Adeyemi - Cardiologist [General]", label)
	assert.Equal(t, "Dr. Adeyemi", NameFromLabel(label))
	assert.Equal(t, "Dr. Adeyemi", NameFromLabel(" Dr. Adeyemi "))
}
