package services

import (
	"context"
	"testing"

	"attendance-system/internal/dto"
	"attendance-system/internal/entities"
	apperrors "attendance-system/pkg/errors"
	"attendance-system/pkg/session"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStudentRepo struct {
	students map[uuid.UUID]*entities.StudentProfile
}

func newFakeStudentRepo(students ...*entities.StudentProfile) *fakeStudentRepo {
	r := &fakeStudentRepo{students: make(map[uuid.UUID]*entities.StudentProfile)}
	for _, s := range students {
		r.students[s.ID] = s
	}
	return r
}

func (r *fakeStudentRepo) GetStudents(ctx context.Context, schoolID *int64, filter dto.StudentListFilter) ([]entities.StudentProfile, uint64, error) {
	out := make([]entities.StudentProfile, 0)
	for _, s := range r.students {
		if schoolID != nil {
			if s.SchoolID == nil || *s.SchoolID != *schoolID {
				continue
			}
		}
		out = append(out, *s)
	}
	return out, uint64(len(out)), nil
}

func (r *fakeStudentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.StudentProfile, error) {
	s, ok := r.students[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStudentRepo) FindByRfid(ctx context.Context, rfidTag string) (*entities.StudentProfile, error) {
	for _, s := range r.students {
		if s.RfidTag != nil && *s.RfidTag == rfidTag {
			cp := *s
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeStudentRepo) RfidAssigned(ctx context.Context, rfidTag string, excludeID *uuid.UUID) (bool, error) {
	for _, s := range r.students {
		if excludeID != nil && s.ID == *excludeID {
			continue
		}
		if s.RfidTag != nil && *s.RfidTag == rfidTag {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeStudentRepo) CreateStudent(ctx context.Context, student *entities.StudentProfile) (uuid.UUID, error) {
	id := uuid.New()
	cp := *student
	cp.ID = id
	r.students[id] = &cp
	return id, nil
}

func (r *fakeStudentRepo) UpdateStudent(ctx context.Context, student *entities.StudentProfile) error {
	if _, ok := r.students[student.ID]; !ok {
		return apperrors.ErrNotFound
	}
	cp := *student
	r.students[student.ID] = &cp
	return nil
}

func (r *fakeStudentRepo) AssignRfid(ctx context.Context, id uuid.UUID, rfidTag *string) error {
	s, ok := r.students[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	s.RfidTag = rfidTag
	return nil
}

func (r *fakeStudentRepo) DeleteStudent(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.students[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.students, id)
	return nil
}

func (r *fakeStudentRepo) GetFilterValues(ctx context.Context, schoolID *int64) (*dto.StudentFilterValuesDTO, error) {
	return &dto.StudentFilterValuesDTO{SchoolYears: []string{}, GradeLevels: []string{}}, nil
}

func strPtr(v string) *string { return &v }

func sampleStudent(schoolID int64) *entities.StudentProfile {
	return &entities.StudentProfile{
		ID:                     uuid.New(),
		LearnerReferenceNumber: strPtr("123456789012"),
		LastName:               strPtr("Reyes"),
		FirstName:              strPtr("Ana"),
		SchoolID:               &schoolID,
		RfidTag:                strPtr("TAG-001"),
	}
}

func adminClaims(schoolID int64) *session.Claims {
	return &session.Claims{UserID: 1, Role: "admin", SchoolID: &schoolID}
}

func TestFindStudentSameSchool(t *testing.T) {
	student := sampleStudent(10)
	svc := NewStudentService(newFakeStudentRepo(student), zap.NewNop())

	got, err := svc.FindStudent(context.Background(), adminClaims(10), student.ID)
	require.NoError(t, err)
	assert.Equal(t, student.ID.String(), got.ID)
}

func TestFindStudentCrossSchoolForbidden(t *testing.T) {
	student := sampleStudent(10)
	svc := NewStudentService(newFakeStudentRepo(student), zap.NewNop())

	_, err := svc.FindStudent(context.Background(), adminClaims(99), student.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestGetStudentsScopedToActorSchool(t *testing.T) {
	mine := sampleStudent(10)
	other := sampleStudent(20)
	other.RfidTag = strPtr("TAG-002")
	svc := NewStudentService(newFakeStudentRepo(mine, other), zap.NewNop())

	students, total, err := svc.GetStudents(context.Background(), adminClaims(10), dto.StudentListFilter{})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	require.Len(t, students, 1)
	assert.Equal(t, mine.ID.String(), students[0].ID)
}

func TestCreateStudentInheritsActorSchool(t *testing.T) {
	repo := newFakeStudentRepo()
	svc := NewStudentService(repo, zap.NewNop())

	created, err := svc.CreateStudent(context.Background(), adminClaims(10), dto.CreateStudentDTO{
		LastName:  "Cruz",
		FirstName: "Ben",
	})
	require.NoError(t, err)
	require.NotNil(t, created.SchoolID)
	assert.Equal(t, int64(10), *created.SchoolID)
}

func TestAssignRfidConflict(t *testing.T) {
	holder := sampleStudent(10)
	newcomer := sampleStudent(10)
	newcomer.RfidTag = nil
	svc := NewStudentService(newFakeStudentRepo(holder, newcomer), zap.NewNop())

	_, err := svc.AssignRfid(context.Background(), adminClaims(10), newcomer.ID, dto.AssignRfidDTO{
		RfidTag: strPtr("TAG-001"),
	})
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 409, httpErr.Code)
}

func TestAssignRfidUnbind(t *testing.T) {
	student := sampleStudent(10)
	svc := NewStudentService(newFakeStudentRepo(student), zap.NewNop())

	got, err := svc.AssignRfid(context.Background(), adminClaims(10), student.ID, dto.AssignRfidDTO{RfidTag: nil})
	require.NoError(t, err)
	assert.Nil(t, got.RfidTag)
}

func TestCheckRfid(t *testing.T) {
	student := sampleStudent(10)
	svc := NewStudentService(newFakeStudentRepo(student), zap.NewNop())

	assigned, err := svc.CheckRfid(context.Background(), "TAG-001")
	require.NoError(t, err)
	assert.True(t, assigned)

	assigned, err = svc.CheckRfid(context.Background(), "TAG-UNKNOWN")
	require.NoError(t, err)
	assert.False(t, assigned)

	_, err = svc.CheckRfid(context.Background(), "")
	assert.Error(t, err)
}

func TestFindStudentByRfid(t *testing.T) {
	student := sampleStudent(10)
	svc := NewStudentService(newFakeStudentRepo(student), zap.NewNop())

	got, err := svc.FindStudentByRfid(context.Background(), adminClaims(10), "TAG-001")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, student.ID.String(), got.ID)

	got, err = svc.FindStudentByRfid(context.Background(), adminClaims(10), "TAG-UNKNOWN")
	require.NoError(t, err)
	assert.Nil(t, got)
}

// Tags held by another school's student are not disclosed to the caller.
func TestFindStudentByRfidCrossSchoolHidden(t *testing.T) {
	student := sampleStudent(10)
	svc := NewStudentService(newFakeStudentRepo(student), zap.NewNop())

	got, err := svc.FindStudentByRfid(context.Background(), adminClaims(99), "TAG-001")
	require.NoError(t, err)
	assert.Nil(t, got)
}
