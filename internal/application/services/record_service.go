package services

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zatekoja/ncrm/internal/domain/entities"
	"github.com/zatekoja/ncrm/internal/domain/repositories"
	"github.com/zatekoja/ncrm/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/ncrm/pkg/errors"
)

// RecordService manages the phones and notes kept per doctor.
type RecordService struct {
	eventPublisher
	hospitals repositories.HospitalRepository
	records   repositories.DoctorRecordRepository
	lock      *StoreLock
}

// NewRecordService creates a new record service.
func NewRecordService(
	hospitals repositories.HospitalRepository,
	records repositories.DoctorRecordRepository,
	lock *StoreLock,
) *RecordService {
	if lock == nil {
		lock = NewStoreLock()
	}
	return &RecordService{
		hospitals: hospitals,
		records:   records,
		lock:      lock,
	}
}

// resolve maps user-entered names onto the names stored in the tree so
// records are always keyed by the exact pair the tree holds.
func (s *RecordService) resolve(ctx context.Context, doctor, hospital string) (string, string, error) {
	doctor, err := requireName("doctor", doctor)
	if err != nil {
		return "", "", err
	}
	hospital, err = requireName("hospital", hospital)
	if err != nil {
		return "", "", err
	}

	hospitals, err := s.hospitals.Load(ctx)
	if err != nil {
		return "", "", err
	}
	h := entities.FindHospital(hospitals, hospital)
	if h == nil {
		return "", "", apperrors.NewNotFoundError(fmt.Sprintf("hospital %q not found", hospital))
	}
	d := entities.FindDoctor(h.Doctors, doctor)
	if d == nil {
		return "", "", apperrors.NewNotFoundError(fmt.Sprintf("doctor %q not found in %q", doctor, h.Name))
	}
	return d.Name, h.Name, nil
}

// GetRecord returns the record of a doctor. A doctor without phones or
// notes gets an empty record.
func (s *RecordService) GetRecord(ctx context.Context, doctor, hospital string) (*entities.DoctorRecord, error) {
	defer s.lock.lock()()

	doctor, hospital, err := s.resolve(ctx, doctor, hospital)
	if err != nil {
		return nil, err
	}
	records, err := s.records.Load(ctx)
	if err != nil {
		return nil, err
	}
	if r := entities.FindRecord(records, doctor, hospital); r != nil {
		return r, nil
	}
	return entities.NewDoctorRecord(doctor, hospital), nil
}

// AddNote appends a note, creating the record on first use.
func (s *RecordService) AddNote(ctx context.Context, doctor, hospital string, input NoteInput) (record *entities.DoctorRecord, err error) {
	ctx, span := observability.StartSpan(ctx, "RecordService.AddNote",
		attribute.String("doctor", doctor), attribute.String("hospital", hospital))
	defer func() { observability.EndSpan(span, err) }()
	defer s.lock.lock()()

	input.normalize()
	if err := validateStruct(&input); err != nil {
		return nil, err
	}

	return s.update(ctx, doctor, hospital, func(r *entities.DoctorRecord) error {
		r.Notes = append(r.Notes, entities.Note{Date: input.Date, Desc: input.Desc})
		return nil
	})
}

// UpdateNote replaces the note at index.
func (s *RecordService) UpdateNote(ctx context.Context, doctor, hospital string, index int, input NoteInput) (record *entities.DoctorRecord, err error) {
	ctx, span := observability.StartSpan(ctx, "RecordService.UpdateNote",
		attribute.String("doctor", doctor), attribute.Int("index", index))
	defer func() { observability.EndSpan(span, err) }()
	defer s.lock.lock()()

	input.normalize()
	if err := validateStruct(&input); err != nil {
		return nil, err
	}

	return s.update(ctx, doctor, hospital, func(r *entities.DoctorRecord) error {
		if index < 0 || index >= len(r.Notes) {
			return apperrors.NewNotFoundError(fmt.Sprintf("note %d not found", index))
		}
		r.Notes[index] = entities.Note{Date: input.Date, Desc: input.Desc}
		return nil
	})
}

// SetPhones replaces the phone list. Blank entries are dropped.
func (s *RecordService) SetPhones(ctx context.Context, doctor, hospital string, phones []string) (record *entities.DoctorRecord, err error) {
	ctx, span := observability.StartSpan(ctx, "RecordService.SetPhones",
		attribute.String("doctor", doctor), attribute.Int("count", len(phones)))
	defer func() { observability.EndSpan(span, err) }()
	defer s.lock.lock()()

	cleaned := make([]string, 0, len(phones))
	for _, p := range phones {
		if p = strings.TrimSpace(p); p != "" {
			cleaned = append(cleaned, p)
		}
	}

	return s.update(ctx, doctor, hospital, func(r *entities.DoctorRecord) error {
		r.Phones = cleaned
		return nil
	})
}

// update runs mutate against the doctor's record and saves the file. The
// caller holds the lock.
func (s *RecordService) update(ctx context.Context, doctor, hospital string, mutate func(*entities.DoctorRecord) error) (*entities.DoctorRecord, error) {
	doctor, hospital, err := s.resolve(ctx, doctor, hospital)
	if err != nil {
		return nil, err
	}

	records, err := s.records.Load(ctx)
	if err != nil {
		return nil, err
	}
	r := entities.FindRecord(records, doctor, hospital)
	if r == nil {
		r = entities.NewDoctorRecord(doctor, hospital)
		records = append(records, r)
	}

	if err := mutate(r); err != nil {
		return nil, err
	}
	if err := s.records.Save(ctx, records); err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().
		Str("doctor", doctor).
		Str("hospital", hospital).
		Int("notes", len(r.Notes)).
		Int("phones", len(r.Phones)).
		Msg("doctor record updated")
	s.publish(ctx, entities.NewDirectoryEvent(entities.DirectoryEventRecordUpdated, hospital, doctor, nil))
	return r, nil
}
