package service

import (
	"context"
	"errors"

	"github.com/egyakin/egyakin-api/internal/model"
	"github.com/egyakin/egyakin-api/internal/repository"
	"github.com/egyakin/egyakin-api/pkg/auth"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles login and token revocation
type AuthService struct {
	doctorRepo *repository.DoctorRepository
	jwtManager *auth.JWTManager
	rdb        *redis.Client
}

func NewAuthService(doctorRepo *repository.DoctorRepository, jwtManager *auth.JWTManager, rdb *redis.Client) *AuthService {
	return &AuthService{
		doctorRepo: doctorRepo,
		jwtManager: jwtManager,
		rdb:        rdb,
	}
}

// Login authenticates a doctor and returns a JWT token
func (s *AuthService) Login(req model.LoginRequest) (*model.LoginResponse, error) {
	doctor, err := s.doctorRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invalid email or password")
		}
		return nil, errors.New("failed to find doctor")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(doctor.Password), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid email or password")
	}

	token, err := s.jwtManager.GenerateToken(doctor.ID, doctor.Email, doctor.Name)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &model.LoginResponse{
		Token:  token,
		Doctor: doctor.ToResponse(),
	}, nil
}

// Logout blacklists the presented token until it would have expired anyway
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if s.rdb == nil {
		return nil
	}
	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		// Already invalid, nothing to revoke
		return nil
	}
	ttl := claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time)
	return s.rdb.Set(ctx, "blacklist:"+token, "1", ttl).Err()
}
