package service

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"swapnest/internal/entity"
)

// UserService backs the admin user-management surface.
type UserService struct {
	users userStore
}

func NewUserService(users userStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) ListUsers(ctx context.Context) ([]entity.User, error) {
	return s.users.ListUsers(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id int) (*entity.User, error) {
	return s.users.GetUserByID(ctx, id)
}

type AdminUserInput struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Role           string `json:"role"`
	IsActive       *bool  `json:"is_active"`
	ContactDetails string `json:"contact_details"`
}

// CreateUser provisions an account on behalf of an administrator. Unlike
// self-registration the role may be set directly.
func (s *UserService) CreateUser(ctx context.Context, in AdminUserInput) (*entity.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, entity.NewValidationError("Username, email and password are required.")
	}
	if in.Role == "" {
		in.Role = entity.RoleUser
	}
	if in.Role != entity.RoleUser && in.Role != entity.RoleAdmin {
		return nil, entity.NewValidationError("Unknown role.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	return s.users.CreateUser(ctx, &entity.User{
		Username:       in.Username,
		Email:          in.Email,
		PasswordHash:   string(hash),
		ContactDetails: in.ContactDetails,
		Role:           in.Role,
		IsActive:       active,
		Balance:        decimal.NewFromInt(1000),
	})
}

// UpdateUser lets an administrator change any account field, including role
// and the active flag.
func (s *UserService) UpdateUser(ctx context.Context, id int, in AdminUserInput) (*entity.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Username != "" {
		user.Username = in.Username
	}
	if in.Email != "" {
		user.Email = in.Email
	}
	if in.ContactDetails != "" {
		user.ContactDetails = in.ContactDetails
	}
	if in.Role != "" {
		if in.Role != entity.RoleUser && in.Role != entity.RoleAdmin {
			return nil, entity.NewValidationError("Unknown role.")
		}
		user.Role = in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	return s.users.UpdateUser(ctx, user)
}

func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	return s.users.DeleteUser(ctx, id)
}
