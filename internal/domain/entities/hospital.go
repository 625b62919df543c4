package entities

import (
	"encoding/json"
	"strings"
)

// Hospital is the root of one referral tree. Doctors holds the doctors that
// work at the hospital directly; everyone else hangs off a referral chain.
type Hospital struct {
	Name    string    `json:"name"`
	Doctors []*Doctor `json:"doctors"`
}

// Doctor is a node of a referral tree.
type Doctor struct {
	Name            string    `json:"name"`
	Role            string    `json:"role"`
	Address         string    `json:"address"`
	ReferredDoctors []*Doctor `json:"referredDoctors"`
}

// NewHospital creates an empty hospital.
func NewHospital(name string) *Hospital {
	return &Hospital{Name: name, Doctors: []*Doctor{}}
}

// NewDoctor creates a doctor without referrals.
func NewDoctor(name, role, address string) *Doctor {
	return &Doctor{
		Name:            name,
		Role:            role,
		Address:         address,
		ReferredDoctors: []*Doctor{},
	}
}

// Label formats a doctor the way pickers show it: "Name - Role [Hospital]".
func (d *Doctor) Label(hospital string) string {
	return d.Name + " - " + d.Role + " [" + hospital + "]"
}

// NameFromLabel strips a picker label back to the doctor name.
func NameFromLabel(label string) string {
	if idx := strings.Index(label, " -"); idx >= 0 {
		label = label[:idx]
	}
	return strings.TrimSpace(label)
}

// MarshalJSON always emits the doctor list as an array.
func (h *Hospital) MarshalJSON() ([]byte, error) {
	type alias Hospital
	out := alias(*h)
	if out.Doctors == nil {
		out.Doctors = []*Doctor{}
	}
	return json.Marshal(out)
}

// MarshalJSON always emits referredDoctors as an array.
func (d *Doctor) MarshalJSON() ([]byte, error) {
	type alias Doctor
	out := alias(*d)
	if out.ReferredDoctors == nil {
		out.ReferredDoctors = []*Doctor{}
	}
	return json.Marshal(out)
}

// UnmarshalJSON fills absent child lists with empty slices.
func (h *Hospital) UnmarshalJSON(data []byte) error {
	type alias Hospital
	var in alias
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.Doctors == nil {
		in.Doctors = []*Doctor{}
	}
	*h = Hospital(in)
	return nil
}

// UnmarshalJSON fills an absent referral list with an empty slice.
func (d *Doctor) UnmarshalJSON(data []byte) error {
	type alias Doctor
	var in alias
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.ReferredDoctors == nil {
		in.ReferredDoctors = []*Doctor{}
	}
	*d = Doctor(in)
	return nil
}
