package services

import (
	"context"

	"attendance-system/internal/dto"
	"attendance-system/internal/entities"
	"attendance-system/internal/repositories"
)

type SchoolServiceInterface interface {
	GetSchools(ctx context.Context) ([]dto.SchoolDTO, error)
	FindSchool(ctx context.Context, id int64) (*dto.SchoolDTO, error)
}

type SchoolService struct {
	schoolRepo repositories.SchoolRepositoryInterface
}

func NewSchoolService(schoolRepo repositories.SchoolRepositoryInterface) SchoolServiceInterface {
	return &SchoolService{schoolRepo: schoolRepo}
}

func schoolToDTO(s *entities.School) *dto.SchoolDTO {
	return &dto.SchoolDTO{
		SchoolID:   s.SchoolID,
		SchoolName: s.SchoolName,
		Head:       s.Head,
		Position:   s.Position,
		Address:    s.Address,
	}
}

func (s *SchoolService) GetSchools(ctx context.Context) ([]dto.SchoolDTO, error) {
	schools, err := s.schoolRepo.GetSchools(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SchoolDTO, 0, len(schools))
	for i := range schools {
		out = append(out, *schoolToDTO(&schools[i]))
	}
	return out, nil
}

func (s *SchoolService) FindSchool(ctx context.Context, id int64) (*dto.SchoolDTO, error) {
	school, err := s.schoolRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return schoolToDTO(school), nil
}
