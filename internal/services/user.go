package services

import (
	"context"

	"attendance-system/internal/authz"
	"attendance-system/internal/dto"
	"attendance-system/internal/entities"
	"attendance-system/internal/repositories"
	apperrors "attendance-system/pkg/errors"
	"attendance-system/pkg/session"
	"attendance-system/pkg/utils"

	"go.uber.org/zap"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context, actor *session.Claims) ([]dto.UserDTO, error)
	FindUser(ctx context.Context, actor *session.Claims, id int64) (*dto.UserDTO, error)
	CreateUser(ctx context.Context, actor *session.Claims, payload dto.CreateUserDTO) (*dto.UserDTO, error)
	UpdateUser(ctx context.Context, actor *session.Claims, id int64, payload dto.UpdateUserDTO) (*dto.UserDTO, error)
	DeleteUser(ctx context.Context, actor *session.Claims, id int64) error
}

type UserService struct {
	userRepo repositories.UserRepositoryInterface
	logger   *zap.Logger
}

func NewUserService(userRepo repositories.UserRepositoryInterface, logger *zap.Logger) UserServiceInterface {
	return &UserService{userRepo: userRepo, logger: logger}
}

func userToDTO(u *entities.User) *dto.UserDTO {
	return &dto.UserDTO{
		UserID:       u.UserID,
		Username:     u.Username,
		Fullname:     u.Fullname,
		Role:         u.Role,
		SchoolID:     u.SchoolID,
		EmailAddress: u.EmailAddress,
		ContactNo:    u.ContactNo,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// GetUsers lists accounts visible to the actor. Admins with a school are
// confined to it; a school-less admin sees every account.
func (s *UserService) GetUsers(ctx context.Context, actor *session.Claims) ([]dto.UserDTO, error) {
	var scope *int64
	if actor != nil {
		scope = actor.SchoolID
	}
	users, err := s.userRepo.GetUsers(ctx, scope)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		out = append(out, *userToDTO(&users[i]))
	}
	return out, nil
}

func (s *UserService) FindUser(ctx context.Context, actor *session.Claims, id int64) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireSchoolMatch(actor, user.SchoolID); err != nil {
		return nil, err
	}
	return userToDTO(user), nil
}

func (s *UserService) CreateUser(ctx context.Context, actor *session.Claims, payload dto.CreateUserDTO) (*dto.UserDTO, error) {
	schoolID := payload.SchoolID
	if actor != nil && actor.SchoolID != nil {
		// a scoped admin can only create accounts inside their own school
		schoolID = actor.SchoolID
	}

	hash, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	role := payload.Role
	if role == "" {
		role = authz.RoleReviewer
	}

	user := &entities.User{
		Username:     payload.Username,
		PasswordHash: hash,
		Fullname:     payload.Fullname,
		Role:         role,
		SchoolID:     schoolID,
		EmailAddress: payload.EmailAddress,
		ContactNo:    payload.ContactNo,
	}
	newID, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.FindUser(ctx, actor, newID)
}

func (s *UserService) UpdateUser(ctx context.Context, actor *session.Claims, id int64, payload dto.UpdateUserDTO) (*dto.UserDTO, error) {
	existing, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireSchoolMatch(actor, existing.SchoolID); err != nil {
		return nil, err
	}

	if payload.Password != nil {
		hash, err := utils.HashPassword(*payload.Password)
		if err != nil {
			return nil, err
		}
		existing.PasswordHash = hash
	} else {
		existing.PasswordHash = ""
	}
	if payload.Fullname != nil {
		existing.Fullname = *payload.Fullname
	} else {
		existing.Fullname = ""
	}
	if payload.Role != nil {
		existing.Role = *payload.Role
	} else {
		existing.Role = ""
	}
	if payload.SchoolID != nil {
		// a scoped admin cannot move accounts into another school
		if actor != nil && actor.SchoolID != nil && *payload.SchoolID != *actor.SchoolID {
			return nil, apperrors.ErrForbidden
		}
		existing.SchoolID = payload.SchoolID
	}
	if payload.EmailAddress != nil {
		existing.EmailAddress = payload.EmailAddress
	}
	if payload.ContactNo != nil {
		existing.ContactNo = payload.ContactNo
	}

	if err := s.userRepo.UpdateUser(ctx, existing); err != nil {
		return nil, err
	}
	return s.FindUser(ctx, actor, id)
}

func (s *UserService) DeleteUser(ctx context.Context, actor *session.Claims, id int64) error {
	if actor != nil && actor.UserID == id {
		return apperrors.NewBadRequestError("You cannot delete your own account")
	}

	existing, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.RequireSchoolMatch(actor, existing.SchoolID); err != nil {
		return err
	}
	return s.userRepo.DeleteUser(ctx, id)
}
