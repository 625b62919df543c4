package entities

import "encoding/json"

// NotePreviewLength is how much of a note description list views show.
const NotePreviewLength = 40

// Note is a dated free-form entry about a doctor.
type Note struct {
	Date string `json:"date"`
	Desc string `json:"desc"`
}

// Preview shortens the description for list views.
func (n Note) Preview() string {
	runes := []rune(n.Desc)
	if len(runes) > NotePreviewLength {
		return string(runes[:NotePreviewLength]) + "..."
	}
	return n.Desc
}

// DoctorRecord holds the phones and notes of a doctor. Records are keyed by
// the exact (Doctor, Hospital) name pair, not by tree identity.
type DoctorRecord struct {
	Doctor   string   `json:"doctor"`
	Hospital string   `json:"hospital"`
	Phones   []string `json:"phones"`
	Notes    []Note   `json:"notes"`
}

// NewDoctorRecord creates an empty record for the pair.
func NewDoctorRecord(doctor, hospital string) *DoctorRecord {
	return &DoctorRecord{
		Doctor:   doctor,
		Hospital: hospital,
		Phones:   []string{},
		Notes:    []Note{},
	}
}

// Matches reports whether the record belongs to the pair.
func (r *DoctorRecord) Matches(doctor, hospital string) bool {
	return r.Doctor == doctor && r.Hospital == hospital
}

// MarshalJSON always emits phones and notes as arrays.
func (r *DoctorRecord) MarshalJSON() ([]byte, error) {
	type alias DoctorRecord
	out := alias(*r)
	if out.Phones == nil {
		out.Phones = []string{}
	}
	if out.Notes == nil {
		out.Notes = []Note{}
	}
	return json.Marshal(out)
}

// FindRecord returns the first record for the pair, or nil.
func FindRecord(records []*DoctorRecord, doctor, hospital string) *DoctorRecord {
	for _, r := range records {
		if r.Matches(doctor, hospital) {
			return r
		}
	}
	return nil
}
