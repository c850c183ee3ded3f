package jwt

import (
	"errors"
	"log"
	"sync"
	"time"

	"coffee-chronicles/domain"
	"coffee-chronicles/internal/utils"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const sessionDuration = 24 * time.Hour

type (
	JWTService interface {
		GenerateSessionToken() (string, time.Time, error)
		// ValidateSessionToken checks signature, expiry, and the revocation list.
		ValidateSessionToken(token string) error
		// RevokeSessionToken invalidates a token until it would have expired
		// anyway. Revoking an invalid token is a no-op.
		RevokeSessionToken(token string)
	}

	sessionClaim struct {
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string

		mu      sync.Mutex
		revoked map[string]time.Time
	}
)

func getSecretKey() string {
	utils.LoadConfig()
	return utils.GetConfig("JWT_SECRET")
}

func NewJWTService() JWTService {
	return &jwtService{
		secretKey: getSecretKey(),
		issuer:    "COFFEE_CHRONICLES",
		revoked:   make(map[string]time.Time),
	}
}

func (j *jwtService) GenerateSessionToken() (string, time.Time, error) {
	expiresAt := time.Now().Add(sessionDuration)
	claims := sessionClaim{
		jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    j.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		log.Println(err)
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (j *jwtService) ValidateSessionToken(token string) error {
	claims, err := j.parseSessionToken(token)
	if err != nil {
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	j.pruneRevokedLocked()
	if _, ok := j.revoked[claims.ID]; ok {
		return domain.ErrTokenRevoked
	}
	return nil
}

func (j *jwtService) RevokeSessionToken(token string) {
	claims, err := j.parseSessionToken(token)
	if err != nil {
		return
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	j.pruneRevokedLocked()
	j.revoked[claims.ID] = claims.ExpiresAt.Time
}

func (j *jwtService) parseSessionToken(token string) (*sessionClaim, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaim{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !parsed.Valid {
		return nil, domain.ErrTokenInvalid
	}
	return parsed.Claims.(*sessionClaim), nil
}

// pruneRevokedLocked drops revocation entries for tokens already expired.
func (j *jwtService) pruneRevokedLocked() {
	now := time.Now()
	for id, expiresAt := range j.revoked {
		if expiresAt.Before(now) {
			delete(j.revoked, id)
		}
	}
}
