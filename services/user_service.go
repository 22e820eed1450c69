package services

import (
	"context"
	"errors"
	"math"

	"marketplace/models"
	"marketplace/repositories"
	"marketplace/utils"
)

type UserService struct {
	userRepo *repositories.UserRepository
}

func NewUserService() *UserService {
	return &UserService{
		userRepo: repositories.NewUserRepository(),
	}
}

func (s *UserService) List(ctx context.Context, page, limit int) (*models.PaginationResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	users, total, err := s.userRepo.FindAll(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	return &models.PaginationResponse{
		Success: true,
		Message: "Users retrieved successfully",
		Data:    users,
		Meta: models.MetaData{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}, nil
}

func (s *UserService) GetByID(ctx context.Context, id int) (*models.UserWithProfile, error) {
	return s.userRepo.GetUserWithProfile(ctx, id)
}

func (s *UserService) Create(ctx context.Context, req models.RegisterRequest) (*models.UserWithProfile, error) {
	if existing, _ := s.userRepo.FindByEmail(ctx, req.Email); existing != nil {
		return nil, errors.New("email already registered")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}

	user := &models.User{Email: req.Email, Password: hashedPassword, Role: role}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	profile := &models.UserProfile{UserID: user.ID, FullName: req.FullName, Phone: req.Phone}
	if err := s.userRepo.CreateProfile(ctx, profile); err != nil {
		return nil, err
	}

	return s.userRepo.GetUserWithProfile(ctx, user.ID)
}

func (s *UserService) Update(ctx context.Context, id int, req models.UpdateUserRequest) (*models.UserWithProfile, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("user not found")
	}

	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	if req.FullName != "" || req.Phone != "" || req.Address != "" {
		profile, err := s.userRepo.GetProfile(ctx, id)
		if err == nil {
			if req.FullName != "" {
				profile.FullName = req.FullName
			}
			if req.Phone != "" {
				profile.Phone = req.Phone
			}
			if req.Address != "" {
				profile.Address = req.Address
			}
			if err := s.userRepo.UpdateProfile(ctx, profile); err != nil {
				return nil, err
			}
		}
	}

	return s.userRepo.GetUserWithProfile(ctx, id)
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	return s.userRepo.Delete(ctx, id)
}
