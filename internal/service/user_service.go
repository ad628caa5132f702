package service

import (
	"errors"
	"strings"
	"time"

	"parko/internal/db"
	"parko/internal/entities"
	"parko/internal/httperr"
	"parko/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

type UserService struct {
	repo      *repository.UserRepository
	jwtSecret string
}

func NewUserService(repo *repository.UserRepository, jwtSecret string) *UserService {
	return &UserService{repo: repo, jwtSecret: jwtSecret}
}

// Register creates a user and returns the profile together with an access
// token, so a fresh registration is immediately logged in.
func (s *UserService) Register(req entities.RegisterRequest) (*entities.UserResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, httperr.Validation("Please provide all required fields.")
	}
	role := req.Role
	if role == "" {
		role = db.RoleProvider
	}
	if role != db.RoleProvider && role != db.RoleUser {
		return nil, httperr.Validation("Invalid role type.")
	}
	username := req.Username
	if username == "" {
		username = req.Email
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &db.User{
		Username:     username,
		Email:        strings.ToLower(req.Email),
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.repo.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, httperr.Conflict("A user with this email already exists.")
		}
		return nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	resp.AccessToken = token
	return resp, nil
}

// Login checks the credentials and returns the profile with a fresh token.
func (s *UserService) Login(req entities.LoginRequest) (*entities.UserResponse, error) {
	user, err := s.repo.GetByEmail(strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, httperr.Unauthorized("Invalid credentials.")
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, httperr.Unauthorized("Invalid credentials.")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	resp.AccessToken = token
	return resp, nil
}

func (s *UserService) Get(userID int) (*entities.UserResponse, error) {
	user, err := s.repo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, httperr.NotFound("User not found.")
		}
		return nil, err
	}
	return toUserResponse(user), nil
}

// Update applies a partial profile update; empty fields keep their value.
func (s *UserService) Update(userID int, req entities.UpdateUserRequest) (*entities.UserResponse, error) {
	user, err := s.repo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, httperr.NotFound("User not found.")
		}
		return nil, err
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *UserService) issueToken(user *db.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func toUserResponse(user *db.User) *entities.UserResponse {
	return &entities.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Phone:    user.Phone,
		Role:     user.Role,
	}
}
