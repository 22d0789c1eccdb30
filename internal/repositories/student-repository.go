package repositories

import (
	"context"
	"errors"
	"fmt"

	"attendance-system/internal/dto"
	"attendance-system/internal/entities"
	apperrors "attendance-system/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const studentTable = "student_profile"

var studentColumns = []string{
	"id", "learner_reference_number", "last_name", "first_name", "middle_name",
	"extension_name", "sex", "school_year", "grade_level", "email_address",
	"phone_number", "parent_email", "father_last_name", "father_first_name",
	"father_contact_number", "mother_last_name", "mother_first_name",
	"mother_contact_number", "guardian_last_name", "guardian_first_name",
	"guardian_contact_number", "school_id", "rfid_tag", "student_image_url", "created_at",
}

type StudentRepositoryInterface interface {
	GetStudents(ctx context.Context, schoolID *int64, filter dto.StudentListFilter) ([]entities.StudentProfile, uint64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entities.StudentProfile, error)
	FindByRfid(ctx context.Context, rfidTag string) (*entities.StudentProfile, error)
	RfidAssigned(ctx context.Context, rfidTag string, excludeID *uuid.UUID) (bool, error)
	CreateStudent(ctx context.Context, student *entities.StudentProfile) (uuid.UUID, error)
	UpdateStudent(ctx context.Context, student *entities.StudentProfile) error
	AssignRfid(ctx context.Context, id uuid.UUID, rfidTag *string) error
	DeleteStudent(ctx context.Context, id uuid.UUID) error
	GetFilterValues(ctx context.Context, schoolID *int64) (*dto.StudentFilterValuesDTO, error)
}

type StudentRepository struct {
	storage *pgxpool.Pool
}

func NewStudentRepository(storage *pgxpool.Pool) StudentRepositoryInterface {
	return &StudentRepository{storage: storage}
}

func scanStudent(row pgx.Row) (*entities.StudentProfile, error) {
	s := &entities.StudentProfile{}
	err := row.Scan(&s.ID, &s.LearnerReferenceNumber, &s.LastName, &s.FirstName, &s.MiddleName,
		&s.ExtensionName, &s.Sex, &s.SchoolYear, &s.GradeLevel, &s.EmailAddress,
		&s.PhoneNumber, &s.ParentEmail, &s.FatherLastName, &s.FatherFirstName,
		&s.FatherContactNumber, &s.MotherLastName, &s.MotherFirstName,
		&s.MotherContactNumber, &s.GuardianLastName, &s.GuardianFirstName,
		&s.GuardianContactNumber, &s.SchoolID, &s.RfidTag, &s.StudentImageURL, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scanning student row: %w", err)
	}
	return s, nil
}

func (r *StudentRepository) studentFilterBuilder(base sq.SelectBuilder, schoolID *int64, filter dto.StudentListFilter) sq.SelectBuilder {
	builder := base.From(studentTable).PlaceholderFormat(sq.Dollar)
	if schoolID != nil {
		builder = builder.Where(sq.Eq{"school_id": *schoolID})
	}
	if filter.SchoolYear != "" {
		builder = builder.Where(sq.Eq{"school_year": filter.SchoolYear})
	}
	if filter.GradeLevel != "" {
		builder = builder.Where(sq.Eq{"grade_level": filter.GradeLevel})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"last_name": pattern},
			sq.ILike{"first_name": pattern},
			sq.ILike{"learner_reference_number": pattern},
		})
	}
	return builder
}

func (r *StudentRepository) GetStudents(ctx context.Context, schoolID *int64, filter dto.StudentListFilter) ([]entities.StudentProfile, uint64, error) {
	countQuery, countArgs, err := r.studentFilterBuilder(sq.Select("COUNT(*)"), schoolID, filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building student count query: %w", err)
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting students: %w", err)
	}

	builder := r.studentFilterBuilder(sq.Select(studentColumns...), schoolID, filter).
		OrderBy("last_name", "first_name")
	if filter.PageSize > 0 {
		builder = builder.Limit(uint64(filter.PageSize))
		if filter.Page > 1 {
			builder = builder.Offset(uint64((filter.Page - 1) * filter.PageSize))
		}
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building student list query: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing students: %w", err)
	}
	defer rows.Close()

	students := make([]entities.StudentProfile, 0)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		students = append(students, *s)
	}
	return students, total, rows.Err()
}

func (r *StudentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.StudentProfile, error) {
	query, args, err := sq.Select(studentColumns...).From(studentTable).
		Where(sq.Eq{"id": id}).PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building student query: %w", err)
	}
	return scanStudent(r.storage.QueryRow(ctx, query, args...))
}

func (r *StudentRepository) FindByRfid(ctx context.Context, rfidTag string) (*entities.StudentProfile, error) {
	query, args, err := sq.Select(studentColumns...).From(studentTable).
		Where(sq.Eq{"rfid_tag": rfidTag}).PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building student query: %w", err)
	}
	return scanStudent(r.storage.QueryRow(ctx, query, args...))
}

func (r *StudentRepository) RfidAssigned(ctx context.Context, rfidTag string, excludeID *uuid.UUID) (bool, error) {
	builder := sq.Select("COUNT(*)").From(studentTable).
		Where(sq.Eq{"rfid_tag": rfidTag}).PlaceholderFormat(sq.Dollar)
	if excludeID != nil {
		builder = builder.Where(sq.NotEq{"id": *excludeID})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return false, fmt.Errorf("building rfid check query: %w", err)
	}
	var count int64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("checking rfid assignment: %w", err)
	}
	return count > 0, nil
}

func (r *StudentRepository) CreateStudent(ctx context.Context, student *entities.StudentProfile) (uuid.UUID, error) {
	newID := uuid.New()
	query := `INSERT INTO student_profile (
		id, learner_reference_number, last_name, first_name, middle_name, extension_name,
		sex, school_year, grade_level, email_address, phone_number, parent_email,
		father_last_name, father_first_name, father_contact_number,
		mother_last_name, mother_first_name, mother_contact_number,
		guardian_last_name, guardian_first_name, guardian_contact_number,
		school_id, rfid_tag)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`
	_, err := r.storage.Exec(ctx, query,
		newID, student.LearnerReferenceNumber, student.LastName, student.FirstName,
		student.MiddleName, student.ExtensionName, student.Sex, student.SchoolYear,
		student.GradeLevel, student.EmailAddress, student.PhoneNumber, student.ParentEmail,
		student.FatherLastName, student.FatherFirstName, student.FatherContactNumber,
		student.MotherLastName, student.MotherFirstName, student.MotherContactNumber,
		student.GuardianLastName, student.GuardianFirstName, student.GuardianContactNumber,
		student.SchoolID, student.RfidTag)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, apperrors.NewConflictError("Learner reference number or RFID tag already exists")
		}
		return uuid.Nil, fmt.Errorf("creating student: %w", err)
	}
	return newID, nil
}

func (r *StudentRepository) UpdateStudent(ctx context.Context, student *entities.StudentProfile) error {
	query := `UPDATE student_profile SET
		learner_reference_number = $2, last_name = $3, first_name = $4, middle_name = $5,
		extension_name = $6, sex = $7, school_year = $8, grade_level = $9,
		email_address = $10, phone_number = $11, parent_email = $12,
		father_last_name = $13, father_first_name = $14, father_contact_number = $15,
		mother_last_name = $16, mother_first_name = $17, mother_contact_number = $18,
		guardian_last_name = $19, guardian_first_name = $20, guardian_contact_number = $21
		WHERE id = $1`
	result, err := r.storage.Exec(ctx, query,
		student.ID, student.LearnerReferenceNumber, student.LastName, student.FirstName,
		student.MiddleName, student.ExtensionName, student.Sex, student.SchoolYear,
		student.GradeLevel, student.EmailAddress, student.PhoneNumber, student.ParentEmail,
		student.FatherLastName, student.FatherFirstName, student.FatherContactNumber,
		student.MotherLastName, student.MotherFirstName, student.MotherContactNumber,
		student.GuardianLastName, student.GuardianFirstName, student.GuardianContactNumber)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("Learner reference number already exists")
		}
		return fmt.Errorf("updating student: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *StudentRepository) AssignRfid(ctx context.Context, id uuid.UUID, rfidTag *string) error {
	result, err := r.storage.Exec(ctx, `UPDATE student_profile SET rfid_tag = $2 WHERE id = $1`, id, rfidTag)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("RFID tag is already assigned to another student")
		}
		return fmt.Errorf("assigning rfid tag: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *StudentRepository) DeleteStudent(ctx context.Context, id uuid.UUID) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM student_profile WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting student: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *StudentRepository) GetFilterValues(ctx context.Context, schoolID *int64) (*dto.StudentFilterValuesDTO, error) {
	values := &dto.StudentFilterValuesDTO{
		SchoolYears: make([]string, 0),
		GradeLevels: make([]string, 0),
	}

	collect := func(column string, dest *[]string) error {
		builder := sq.Select("DISTINCT " + column).From(studentTable).
			Where(sq.NotEq{column: nil}).
			OrderBy(column).PlaceholderFormat(sq.Dollar)
		if schoolID != nil {
			builder = builder.Where(sq.Eq{"school_id": *schoolID})
		}
		query, args, err := builder.ToSql()
		if err != nil {
			return fmt.Errorf("building filter values query: %w", err)
		}
		rows, err := r.storage.Query(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("loading filter values: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var v string
			if err := rows.Scan(&v); err != nil {
				return fmt.Errorf("scanning filter value: %w", err)
			}
			*dest = append(*dest, v)
		}
		return rows.Err()
	}

	if err := collect("school_year", &values.SchoolYears); err != nil {
		return nil, err
	}
	if err := collect("grade_level", &values.GradeLevels); err != nil {
		return nil, err
	}
	return values, nil
}
