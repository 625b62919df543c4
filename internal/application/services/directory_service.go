package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zatekoja/ncrm/internal/domain/entities"
	"github.com/zatekoja/ncrm/internal/domain/repositories"
	"github.com/zatekoja/ncrm/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/ncrm/pkg/errors"
)

// DefaultHospitalName is the hospital seeded into an empty directory.
const DefaultHospitalName = "Default Hospital"

// DoctorDetails is a doctor together with the hospital whose tree holds it.
type DoctorDetails struct {
	Doctor   *entities.Doctor `json:"doctor"`
	Hospital string           `json:"hospital"`
}

// Suggestions lists the names offered when entering hospitals and doctors.
type Suggestions struct {
	Hospitals    []string `json:"hospitals"`
	DoctorNames  []string `json:"doctor_names"`
	DoctorLabels []string `json:"doctor_labels"`
}

// DirectoryService manages hospitals, doctors and referral trees.
type DirectoryService struct {
	eventPublisher
	hospitals repositories.HospitalRepository
	records   repositories.DoctorRecordRepository
	lock      *StoreLock
}

// NewDirectoryService creates a new directory service. Pass the same lock
// to every service built over the same files.
func NewDirectoryService(
	hospitals repositories.HospitalRepository,
	records repositories.DoctorRecordRepository,
	lock *StoreLock,
) *DirectoryService {
	if lock == nil {
		lock = NewStoreLock()
	}
	return &DirectoryService{
		hospitals: hospitals,
		records:   records,
		lock:      lock,
	}
}

// ListHospitals returns the whole forest.
func (s *DirectoryService) ListHospitals(ctx context.Context) ([]*entities.Hospital, error) {
	defer s.lock.lock()()
	return s.hospitals.Load(ctx)
}

// GetHospital returns one hospital, matched ignoring case.
func (s *DirectoryService) GetHospital(ctx context.Context, name string) (*entities.Hospital, error) {
	defer s.lock.lock()()

	hospitals, err := s.hospitals.Load(ctx)
	if err != nil {
		return nil, err
	}
	h := entities.FindHospital(hospitals, strings.TrimSpace(name))
	if h == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("hospital %q not found", name))
	}
	return h, nil
}

// AddHospital creates an empty hospital.
func (s *DirectoryService) AddHospital(ctx context.Context, name string) (h *entities.Hospital, err error) {
	ctx, span := observability.StartSpan(ctx, "DirectoryService.AddHospital")
	defer func() { observability.EndSpan(span, err) }()
	defer s.lock.lock()()

	name, err = requireName("hospital", name)
	if err != nil {
		return nil, err
	}

	hospitals, err := s.hospitals.Load(ctx)
	if err != nil {
		return nil, err
	}
	if entities.HospitalExists(hospitals, name) {
		return nil, apperrors.NewConflictError(fmt.Sprintf("hospital %q already exists", name))
	}

	h = entities.NewHospital(name)
	hospitals = append(hospitals, h)
	if err := s.hospitals.Save(ctx, hospitals); err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().Str("hospital", name).Msg("hospital added")
	s.publish(ctx, entities.NewDirectoryEvent(entities.DirectoryEventHospitalAdded, name, "", nil))
	return h, nil
}

// AddDoctor adds a root doctor to a hospital, creating the hospital when it
// does not exist yet. Doctor names are unique across the whole directory.
func (s *DirectoryService) AddDoctor(ctx context.Context, hospitalName string, input DoctorInput) (d *entities.Doctor, err error) {
	ctx, span := observability.StartSpan(ctx, "DirectoryService.AddDoctor",
		attribute.String("hospital", hospitalName))
	defer func() { observability.EndSpan(span, err) }()
	defer s.lock.lock()()

	hospitalName, err = requireName("hospital", hospitalName)
	if err != nil {
		return nil, err
	}
	input.normalize()
	if err := validateStruct(&input); err != nil {
		return nil, err
	}

	hospitals, err := s.hospitals.Load(ctx)
	if err != nil {
		return nil, err
	}
	if entities.DoctorExists(hospitals, input.Name) {
		return nil, apperrors.NewConflictError(fmt.Sprintf("doctor %q already exists", input.Name))
	}

	h := entities.FindHospital(hospitals, hospitalName)
	created := h == nil
	if created {
		h = entities.NewHospital(hospitalName)
		hospitals = append(hospitals, h)
	}

	d = entities.NewDoctor(input.Name, input.Role, input.Address)
	h.Doctors = append(h.Doctors, d)
	if err := s.hospitals.Save(ctx, hospitals); err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().
		Str("hospital", h.Name).
		Str("doctor", d.Name).
		Bool("hospital_created", created).
		Msg("doctor added")
	if created {
		s.publish(ctx, entities.NewDirectoryEvent(entities.DirectoryEventHospitalAdded, h.Name, "", nil))
	}
	s.publish(ctx, entities.NewDirectoryEvent(entities.DirectoryEventDoctorAdded, h.Name, d.Name, nil))
	return d, nil
}

// AddReferral appends a new doctor as a child of the referring doctor. The
// referrer may be given as a picker label ("Name - Role [Hospital]").
func (s *DirectoryService) AddReferral(ctx context.Context, referrer string, input DoctorInput) (details *DoctorDetails, err error) {
	ctx, span := observability.StartSpan(ctx, "DirectoryService.AddReferral")
	defer func() { observability.EndSpan(span, err) }()
	defer s.lock.lock()()

	referrer, err = requireName("referring doctor", entities.NameFromLabel(referrer))
	if err != nil {
		return nil, err
	}
	input.normalize()
	if err := validateStruct(&input); err != nil {
		return nil, err
	}

	hospitals, err := s.hospitals.Load(ctx)
	if err != nil {
		return nil, err
	}
	if entities.DoctorExists(hospitals, input.Name) {
		return nil, apperrors.NewConflictError(fmt.Sprintf("doctor %q already exists", input.Name))
	}

	parent, h := entities.LocateDoctor(hospitals, referrer)
	if parent == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("referring doctor %q not found", referrer))
	}

	d := entities.NewDoctor(input.Name, input.Role, input.Address)
	parent.ReferredDoctors = append(parent.ReferredDoctors, d)
	if err := s.hospitals.Save(ctx, hospitals); err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().
		Str("hospital", h.Name).
		Str("referrer", parent.Name).
		Str("doctor", d.Name).
		Msg("referral added")
	s.publish(ctx, entities.NewDirectoryEvent(entities.DirectoryEventReferralAdded, h.Name, d.Name,
		map[string]string{"referred_by": parent.Name}))
	return &DoctorDetails{Doctor: d, Hospital: h.Name}, nil
}

// GetDoctor finds a doctor anywhere in the directory.
func (s *DirectoryService) GetDoctor(ctx context.Context, name string) (*DoctorDetails, error) {
	defer s.lock.lock()()

	hospitals, err := s.hospitals.Load(ctx)
	if err != nil {
		return nil, err
	}
	d, h := entities.LocateDoctor(hospitals, strings.TrimSpace(name))
	if d == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("doctor %q not found", name))
	}
	return &DoctorDetails{Doctor: d, Hospital: h.Name}, nil
}

// Search filters the forest by a case-insensitive substring of hospital
// names and doctor name, role or address.
func (s *DirectoryService) Search(ctx context.Context, query string) ([]*entities.Hospital, error) {
	defer s.lock.lock()()

	hospitals, err := s.hospitals.Load(ctx)
	if err != nil {
		return nil, err
	}
	return entities.FilterHospitals(hospitals, query), nil
}

// Suggestions returns distinct hospital names, distinct doctor names and
// labelled doctor entries for referral pickers.
func (s *DirectoryService) Suggestions(ctx context.Context) (*Suggestions, error) {
	defer s.lock.lock()()

	hospitals, err := s.hospitals.Load(ctx)
	if err != nil {
		return nil, err
	}

	out := &Suggestions{
		Hospitals:    []string{},
		DoctorNames:  []string{},
		DoctorLabels: []string{},
	}

	seenHospitals := make(map[string]struct{}, len(hospitals))
	for _, h := range hospitals {
		if _, ok := seenHospitals[h.Name]; !ok {
			seenHospitals[h.Name] = struct{}{}
			out.Hospitals = append(out.Hospitals, h.Name)
		}
	}

	seenDoctors := make(map[string]struct{})
	for _, ref := range entities.CollectDoctors(hospitals) {
		if _, ok := seenDoctors[ref.Doctor.Name]; !ok {
			seenDoctors[ref.Doctor.Name] = struct{}{}
			out.DoctorNames = append(out.DoctorNames, ref.Doctor.Name)
		}
		out.DoctorLabels = append(out.DoctorLabels, ref.Doctor.Label(ref.Hospital))
	}
	return out, nil
}

// Seed creates the default hospital when the directory is empty and reports
// whether it did.
func (s *DirectoryService) Seed(ctx context.Context) (bool, error) {
	defer s.lock.lock()()

	hospitals, err := s.hospitals.Load(ctx)
	if err != nil {
		return false, err
	}
	if len(hospitals) > 0 {
		return false, nil
	}

	if err := s.hospitals.Save(ctx, []*entities.Hospital{entities.NewHospital(DefaultHospitalName)}); err != nil {
		return false, err
	}
	observability.LoggerFromContext(ctx).Info().Str("hospital", DefaultHospitalName).Msg("seeded empty directory")
	return true, nil
}

// RenameHospital renames a hospital in the tree file and then in every
// doctor record that refers to it. The two files are written one after the
// other; a failure between the writes leaves records under the old name.
func (s *DirectoryService) RenameHospital(ctx context.Context, oldName, newName string) (err error) {
	ctx, span := observability.StartSpan(ctx, "DirectoryService.RenameHospital",
		attribute.String("old_name", oldName), attribute.String("new_name", newName))
	defer func() { observability.EndSpan(span, err) }()
	defer s.lock.lock()()

	newName, err = requireName("new hospital", newName)
	if err != nil {
		return err
	}

	hospitals, err := s.hospitals.Load(ctx)
	if err != nil {
		return err
	}
	h := entities.FindHospital(hospitals, strings.TrimSpace(oldName))
	if h == nil {
		return apperrors.NewNotFoundError(fmt.Sprintf("hospital %q not found", oldName))
	}
	stored := h.Name
	if newName == stored {
		return apperrors.NewValidationError("new hospital name must differ from the current one")
	}
	if other := entities.FindHospital(hospitals, newName); other != nil && other != h {
		return apperrors.NewConflictError(fmt.Sprintf("hospital %q already exists", newName))
	}

	records, err := s.records.Load(ctx)
	if err != nil {
		return err
	}

	h.Name = newName
	if err := s.hospitals.Save(ctx, hospitals); err != nil {
		return err
	}

	moved := 0
	for _, r := range records {
		if r.Hospital == stored {
			r.Hospital = newName
			moved++
		}
	}
	if moved > 0 {
		if err := s.records.Save(ctx, records); err != nil {
			return apperrors.NewInternalError("hospital renamed but doctor records still use the old name", err)
		}
	}

	observability.LoggerFromContext(ctx).Info().
		Str("old_name", stored).
		Str("new_name", newName).
		Int("records", moved).
		Msg("hospital renamed")
	event := entities.NewDirectoryEvent(entities.DirectoryEventHospitalRenamed, newName, "",
		map[string]string{"old_name": stored})
	s.publish(ctx, event)
	s.publishHospital(ctx, stored, event)
	return nil
}

// RenameDoctor renames a doctor inside the named hospital's tree and moves
// the doctor's record to the new name. Same write ordering as RenameHospital.
func (s *DirectoryService) RenameDoctor(ctx context.Context, hospitalName, oldName, newName string) (err error) {
	ctx, span := observability.StartSpan(ctx, "DirectoryService.RenameDoctor",
		attribute.String("hospital", hospitalName),
		attribute.String("old_name", oldName), attribute.String("new_name", newName))
	defer func() { observability.EndSpan(span, err) }()
	defer s.lock.lock()()

	newName, err = requireName("new doctor", newName)
	if err != nil {
		return err
	}

	hospitals, err := s.hospitals.Load(ctx)
	if err != nil {
		return err
	}
	h := entities.FindHospital(hospitals, strings.TrimSpace(hospitalName))
	if h == nil {
		return apperrors.NewNotFoundError(fmt.Sprintf("hospital %q not found", hospitalName))
	}
	d := entities.FindDoctor(h.Doctors, strings.TrimSpace(oldName))
	if d == nil {
		return apperrors.NewNotFoundError(fmt.Sprintf("doctor %q not found in %q", oldName, h.Name))
	}
	stored := d.Name
	if newName == stored {
		return apperrors.NewValidationError("new doctor name must differ from the current one")
	}
	if other, _ := entities.LocateDoctor(hospitals, newName); other != nil && other != d {
		return apperrors.NewConflictError(fmt.Sprintf("doctor %q already exists", newName))
	}

	records, err := s.records.Load(ctx)
	if err != nil {
		return err
	}

	entities.RenameDoctors(h.Doctors, stored, newName)
	if err := s.hospitals.Save(ctx, hospitals); err != nil {
		return err
	}

	moved := 0
	for _, r := range records {
		if r.Matches(stored, h.Name) {
			r.Doctor = newName
			moved++
		}
	}
	if moved > 0 {
		if err := s.records.Save(ctx, records); err != nil {
			return apperrors.NewInternalError("doctor renamed but the record still uses the old name", err)
		}
	}

	observability.LoggerFromContext(ctx).Info().
		Str("hospital", h.Name).
		Str("old_name", stored).
		Str("new_name", newName).
		Msg("doctor renamed")
	s.publish(ctx, entities.NewDirectoryEvent(entities.DirectoryEventDoctorRenamed, h.Name, newName,
		map[string]string{"old_name": stored}))
	return nil
}

// Import replaces both documents wholesale. Both payloads are parsed and
// checked for null entries and case-insensitive duplicate names before
// either file is written.
func (s *DirectoryService) Import(ctx context.Context, hospitalJSON, notesJSON []byte) (err error) {
	ctx, span := observability.StartSpan(ctx, "DirectoryService.Import")
	defer func() { observability.EndSpan(span, err) }()
	defer s.lock.lock()()

	if blankDocument(hospitalJSON) || blankDocument(notesJSON) {
		return apperrors.NewValidationError("both hospital and notes documents are required")
	}

	var hospitals []*entities.Hospital
	if err := json.Unmarshal(hospitalJSON, &hospitals); err != nil {
		return apperrors.NewValidationError("hospital document is not valid: " + err.Error())
	}
	var records []*entities.DoctorRecord
	if err := json.Unmarshal(notesJSON, &records); err != nil {
		return apperrors.NewValidationError("notes document is not valid: " + err.Error())
	}
	if err := entities.CheckForest(hospitals); err != nil {
		return apperrors.NewValidationError("hospital document is not valid: " + err.Error())
	}
	if err := entities.CheckUnique(hospitals); err != nil {
		return apperrors.NewValidationError("hospital document is not valid: " + err.Error())
	}
	if err := entities.CheckRecords(records); err != nil {
		return apperrors.NewValidationError("notes document is not valid: " + err.Error())
	}

	if err := s.hospitals.Save(ctx, hospitals); err != nil {
		return err
	}
	if err := s.records.Save(ctx, records); err != nil {
		return err
	}

	observability.LoggerFromContext(ctx).Info().
		Int("hospitals", len(hospitals)).
		Int("records", len(records)).
		Msg("directory imported")
	s.publish(ctx, entities.NewDirectoryEvent(entities.DirectoryEventImported, "", "", nil))
	return nil
}

func blankDocument(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) == 0 || bytes.Equal(data, []byte("null"))
}
