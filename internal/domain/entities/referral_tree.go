package entities

import "strings"

// DoctorRef is a flattened view of a doctor inside the directory.
type DoctorRef struct {
	Doctor   *Doctor
	Hospital string
	Depth    int
}

// FindDoctor walks the trees depth-first and returns the first doctor whose
// name matches case-insensitively.
func FindDoctor(doctors []*Doctor, name string) *Doctor {
	for _, d := range doctors {
		if strings.EqualFold(d.Name, name) {
			return d
		}
		if found := FindDoctor(d.ReferredDoctors, name); found != nil {
			return found
		}
	}
	return nil
}

// FindHospital returns the hospital with the given name, ignoring case.
func FindHospital(hospitals []*Hospital, name string) *Hospital {
	for _, h := range hospitals {
		if strings.EqualFold(h.Name, name) {
			return h
		}
	}
	return nil
}

// LocateDoctor scans hospitals in order and returns the first matching
// doctor together with the hospital whose tree contains it.
func LocateDoctor(hospitals []*Hospital, name string) (*Doctor, *Hospital) {
	for _, h := range hospitals {
		if d := FindDoctor(h.Doctors, name); d != nil {
			return d, h
		}
	}
	return nil, nil
}

// HospitalExists reports whether a hospital with the name exists.
func HospitalExists(hospitals []*Hospital, name string) bool {
	return FindHospital(hospitals, name) != nil
}

// DoctorExists reports whether a doctor with the name exists in any tree.
func DoctorExists(hospitals []*Hospital, name string) bool {
	d, _ := LocateDoctor(hospitals, name)
	return d != nil
}

// CollectDoctors lists every doctor in pre-order.
func CollectDoctors(hospitals []*Hospital) []DoctorRef {
	var refs []DoctorRef
	for _, h := range hospitals {
		refs = collect(refs, h.Doctors, h.Name, 0)
	}
	return refs
}

func collect(refs []DoctorRef, doctors []*Doctor, hospital string, depth int) []DoctorRef {
	for _, d := range doctors {
		refs = append(refs, DoctorRef{Doctor: d, Hospital: hospital, Depth: depth})
		refs = collect(refs, d.ReferredDoctors, hospital, depth+1)
	}
	return refs
}

// RenameDoctors rewrites every node named exactly oldName and returns how
// many nodes changed.
func RenameDoctors(doctors []*Doctor, oldName, newName string) int {
	changed := 0
	for _, d := range doctors {
		if d.Name == oldName {
			d.Name = newName
			changed++
		}
		changed += RenameDoctors(d.ReferredDoctors, oldName, newName)
	}
	return changed
}

// DoctorMatches reports whether the doctor or anyone in its subtree contains
// the lowercased query in name, role or address.
func DoctorMatches(d *Doctor, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(d.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(d.Role), lowerQuery) ||
		strings.Contains(strings.ToLower(d.Address), lowerQuery) {
		return true
	}
	for _, ref := range d.ReferredDoctors {
		if DoctorMatches(ref, lowerQuery) {
			return true
		}
	}
	return false
}

// FilterHospitals keeps hospitals whose name matches or that have a root
// doctor with a matching subtree. Only matching root doctors are kept, each
// with its full subtree. The input is not modified.
func FilterHospitals(hospitals []*Hospital, query string) []*Hospital {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return hospitals
	}

	var out []*Hospital
	for _, h := range hospitals {
		hospitalMatch := strings.Contains(strings.ToLower(h.Name), q)
		matched := []*Doctor{}
		for _, d := range h.Doctors {
			if DoctorMatches(d, q) {
				matched = append(matched, d)
			}
		}
		if hospitalMatch || len(matched) > 0 {
			out = append(out, &Hospital{Name: h.Name, Doctors: matched})
		}
	}
	return out
}
