package services

import (
	"context"
	"errors"

	"attendance-system/internal/authz"
	"attendance-system/internal/dto"
	"attendance-system/internal/entities"
	"attendance-system/internal/repositories"
	apperrors "attendance-system/pkg/errors"
	"attendance-system/pkg/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type StudentServiceInterface interface {
	GetStudents(ctx context.Context, actor *session.Claims, filter dto.StudentListFilter) ([]dto.StudentDTO, uint64, error)
	FindStudent(ctx context.Context, actor *session.Claims, id uuid.UUID) (*dto.StudentDTO, error)
	CreateStudent(ctx context.Context, actor *session.Claims, payload dto.CreateStudentDTO) (*dto.StudentDTO, error)
	UpdateStudent(ctx context.Context, actor *session.Claims, id uuid.UUID, payload dto.UpdateStudentDTO) (*dto.StudentDTO, error)
	DeleteStudent(ctx context.Context, actor *session.Claims, id uuid.UUID) error
	AssignRfid(ctx context.Context, actor *session.Claims, id uuid.UUID, payload dto.AssignRfidDTO) (*dto.StudentDTO, error)
	CheckRfid(ctx context.Context, rfidTag string) (bool, error)
	FindStudentByRfid(ctx context.Context, actor *session.Claims, rfidTag string) (*dto.StudentDTO, error)
	GetFilterValues(ctx context.Context, actor *session.Claims) (*dto.StudentFilterValuesDTO, error)
}

type StudentService struct {
	studentRepo repositories.StudentRepositoryInterface
	logger      *zap.Logger
}

func NewStudentService(studentRepo repositories.StudentRepositoryInterface, logger *zap.Logger) StudentServiceInterface {
	return &StudentService{studentRepo: studentRepo, logger: logger}
}

func studentToDTO(s *entities.StudentProfile) *dto.StudentDTO {
	return &dto.StudentDTO{
		ID:                     s.ID.String(),
		LearnerReferenceNumber: s.LearnerReferenceNumber,
		LastName:               s.LastName,
		FirstName:              s.FirstName,
		MiddleName:             s.MiddleName,
		ExtensionName:          s.ExtensionName,
		Sex:                    s.Sex,
		SchoolYear:             s.SchoolYear,
		GradeLevel:             s.GradeLevel,
		SchoolID:               s.SchoolID,
		RfidTag:                s.RfidTag,
		CreatedAt:              s.CreatedAt,
	}
}

func actorScope(actor *session.Claims) *int64 {
	if actor == nil {
		return nil
	}
	return actor.SchoolID
}

func (s *StudentService) GetStudents(ctx context.Context, actor *session.Claims, filter dto.StudentListFilter) ([]dto.StudentDTO, uint64, error) {
	students, total, err := s.studentRepo.GetStudents(ctx, actorScope(actor), filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.StudentDTO, 0, len(students))
	for i := range students {
		out = append(out, *studentToDTO(&students[i]))
	}
	return out, total, nil
}

func (s *StudentService) FindStudent(ctx context.Context, actor *session.Claims, id uuid.UUID) (*dto.StudentDTO, error) {
	student, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireSchoolMatch(actor, student.SchoolID); err != nil {
		return nil, err
	}
	return studentToDTO(student), nil
}

func (s *StudentService) CreateStudent(ctx context.Context, actor *session.Claims, payload dto.CreateStudentDTO) (*dto.StudentDTO, error) {
	student := &entities.StudentProfile{
		LearnerReferenceNumber: payload.LearnerReferenceNumber,
		LastName:               &payload.LastName,
		FirstName:              &payload.FirstName,
		MiddleName:             payload.MiddleName,
		ExtensionName:          payload.ExtensionName,
		Sex:                    payload.Sex,
		SchoolYear:             payload.SchoolYear,
		GradeLevel:             payload.GradeLevel,
		EmailAddress:           payload.EmailAddress,
		PhoneNumber:            payload.PhoneNumber,
		ParentEmail:            payload.ParentEmail,
		FatherLastName:         payload.FatherLastName,
		FatherFirstName:        payload.FatherFirstName,
		FatherContactNumber:    payload.FatherContactNumber,
		MotherLastName:         payload.MotherLastName,
		MotherFirstName:        payload.MotherFirstName,
		MotherContactNumber:    payload.MotherContactNumber,
		GuardianLastName:       payload.GuardianLastName,
		GuardianFirstName:      payload.GuardianFirstName,
		GuardianContactNumber:  payload.GuardianContactNumber,
		SchoolID:               actorScope(actor),
	}

	newID, err := s.studentRepo.CreateStudent(ctx, student)
	if err != nil {
		return nil, err
	}
	return s.FindStudent(ctx, actor, newID)
}

func (s *StudentService) UpdateStudent(ctx context.Context, actor *session.Claims, id uuid.UUID, payload dto.UpdateStudentDTO) (*dto.StudentDTO, error) {
	existing, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireSchoolMatch(actor, existing.SchoolID); err != nil {
		return nil, err
	}

	applyString := func(dst **string, src *string) {
		if src != nil {
			*dst = src
		}
	}
	applyString(&existing.LearnerReferenceNumber, payload.LearnerReferenceNumber)
	applyString(&existing.LastName, payload.LastName)
	applyString(&existing.FirstName, payload.FirstName)
	applyString(&existing.MiddleName, payload.MiddleName)
	applyString(&existing.ExtensionName, payload.ExtensionName)
	applyString(&existing.Sex, payload.Sex)
	applyString(&existing.SchoolYear, payload.SchoolYear)
	applyString(&existing.GradeLevel, payload.GradeLevel)
	applyString(&existing.EmailAddress, payload.EmailAddress)
	applyString(&existing.PhoneNumber, payload.PhoneNumber)
	applyString(&existing.ParentEmail, payload.ParentEmail)
	applyString(&existing.FatherLastName, payload.FatherLastName)
	applyString(&existing.FatherFirstName, payload.FatherFirstName)
	applyString(&existing.FatherContactNumber, payload.FatherContactNumber)
	applyString(&existing.MotherLastName, payload.MotherLastName)
	applyString(&existing.MotherFirstName, payload.MotherFirstName)
	applyString(&existing.MotherContactNumber, payload.MotherContactNumber)
	applyString(&existing.GuardianLastName, payload.GuardianLastName)
	applyString(&existing.GuardianFirstName, payload.GuardianFirstName)
	applyString(&existing.GuardianContactNumber, payload.GuardianContactNumber)

	if err := s.studentRepo.UpdateStudent(ctx, existing); err != nil {
		return nil, err
	}
	return s.FindStudent(ctx, actor, id)
}

func (s *StudentService) DeleteStudent(ctx context.Context, actor *session.Claims, id uuid.UUID) error {
	existing, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.RequireSchoolMatch(actor, existing.SchoolID); err != nil {
		return err
	}
	return s.studentRepo.DeleteStudent(ctx, id)
}

// AssignRfid binds a tag to a student, or unbinds when the tag is nil.
func (s *StudentService) AssignRfid(ctx context.Context, actor *session.Claims, id uuid.UUID, payload dto.AssignRfidDTO) (*dto.StudentDTO, error) {
	existing, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireSchoolMatch(actor, existing.SchoolID); err != nil {
		return nil, err
	}

	if payload.RfidTag != nil && *payload.RfidTag != "" {
		taken, err := s.studentRepo.RfidAssigned(ctx, *payload.RfidTag, &id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.NewConflictError("RFID tag is already assigned to another student")
		}
	}

	if err := s.studentRepo.AssignRfid(ctx, id, payload.RfidTag); err != nil {
		return nil, err
	}
	return s.FindStudent(ctx, actor, id)
}

func (s *StudentService) CheckRfid(ctx context.Context, rfidTag string) (bool, error) {
	if rfidTag == "" {
		return false, apperrors.NewBadRequestError("RFID tag is required")
	}
	return s.studentRepo.RfidAssigned(ctx, rfidTag, nil)
}

// FindStudentByRfid looks a student up by tag. Missing tags and tags owned
// outside the caller's school both come back as nil, not an error.
func (s *StudentService) FindStudentByRfid(ctx context.Context, actor *session.Claims, rfidTag string) (*dto.StudentDTO, error) {
	if rfidTag == "" {
		return nil, apperrors.NewBadRequestError("RFID tag is required")
	}
	student, err := s.studentRepo.FindByRfid(ctx, rfidTag)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := authz.RequireSchoolMatch(actor, student.SchoolID); err != nil {
		return nil, nil
	}
	return studentToDTO(student), nil
}

func (s *StudentService) GetFilterValues(ctx context.Context, actor *session.Claims) (*dto.StudentFilterValuesDTO, error) {
	return s.studentRepo.GetFilterValues(ctx, actorScope(actor))
}
