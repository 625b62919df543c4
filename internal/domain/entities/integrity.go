package entities

import (
	"fmt"
	"strings"
)

// CheckForest fails on the first null hospital or doctor entry at any depth.
func CheckForest(hospitals []*Hospital) error {
	for i, h := range hospitals {
		if h == nil {
			return fmt.Errorf("hospital #%d is null", i)
		}
		if err := checkDoctors(h.Doctors, h.Name); err != nil {
			return err
		}
	}
	return nil
}

func checkDoctors(doctors []*Doctor, parent string) error {
	for i, d := range doctors {
		if d == nil {
			return fmt.Errorf("doctor #%d under %q is null", i, parent)
		}
		if err := checkDoctors(d.ReferredDoctors, d.Name); err != nil {
			return err
		}
	}
	return nil
}

// CheckRecords fails on the first null record.
func CheckRecords(records []*DoctorRecord) error {
	for i, r := range records {
		if r == nil {
			return fmt.Errorf("record #%d is null", i)
		}
	}
	return nil
}

// CheckUnique fails when two hospitals, or two doctors anywhere in the
// forest, share a name ignoring case. The forest must pass CheckForest.
func CheckUnique(hospitals []*Hospital) error {
	seen := make(map[string]string, len(hospitals))
	for _, h := range hospitals {
		key := strings.ToLower(h.Name)
		if first, ok := seen[key]; ok {
			return fmt.Errorf("hospital %q duplicates %q", h.Name, first)
		}
		seen[key] = h.Name
	}

	seen = make(map[string]string)
	for _, ref := range CollectDoctors(hospitals) {
		key := strings.ToLower(ref.Doctor.Name)
		if first, ok := seen[key]; ok {
			return fmt.Errorf("doctor %q in %q duplicates %q", ref.Doctor.Name, ref.Hospital, first)
		}
		seen[key] = ref.Doctor.Name
	}
	return nil
}
