package auth

import (
	"coffee-chronicles/domain"
	"coffee-chronicles/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

type (
	// AuthService gates write access behind the single shared password.
	AuthService interface {
		Login(password string) (domain.LoginResponse, error)
		Verify(token string) error
		Logout(token string)
	}

	authService struct {
		passwordHash string
		jwtService   jwt.JWTService
	}
)

func NewAuthService(passwordHash string, jwtService jwt.JWTService) AuthService {
	return &authService{
		passwordHash: passwordHash,
		jwtService:   jwtService,
	}
}

func (s *authService) Login(password string) (domain.LoginResponse, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return domain.LoginResponse{}, domain.ErrWrongPassword
	}

	token, expiresAt, err := s.jwtService.GenerateSessionToken()
	if err != nil {
		return domain.LoginResponse{}, err
	}

	return domain.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *authService) Verify(token string) error {
	return s.jwtService.ValidateSessionToken(token)
}

func (s *authService) Logout(token string) {
	s.jwtService.RevokeSessionToken(token)
}
