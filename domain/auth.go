package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessLogin  = "login successful"
	MessageSuccessLogout = "logout successful"
	MessageSuccessVerify = "session verified"

	MessageFailedLogin  = "failed to login"
	MessageFailedVerify = "session invalid or expired"

	ErrWrongPassword = errors.New("incorrect password")
)

type (
	LoginRequest struct {
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expiresAt"`
	}
)
