package admin

import (
	"crypto/subtle"
	"errors"
	"time"

	"sukaikan/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleAdmin = "admin"
	TokenTTL  = 24 * time.Hour

	// defaultPassword applies when no ADMIN_PASSWORD_HASH is configured.
	defaultPassword = "sukaikan"
)

type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Authenticator checks the single admin account and issues its tokens.
type Authenticator struct {
	username     string
	passwordHash string
	secret       []byte
	now          func() time.Time
}

func NewAuthenticator(username, passwordHash, secret string) (*Authenticator, error) {
	if passwordHash == "" {
		logger.L().Warn("ADMIN_PASSWORD_HASH not set, using the default admin password")
		h, err := HashPassword(defaultPassword)
		if err != nil {
			return nil, err
		}
		passwordHash = h
	}
	if secret == "" {
		logger.L().Warn("JWT_SECRET not set, admin login is disabled")
	}

	return &Authenticator{
		username:     username,
		passwordHash: passwordHash,
		secret:       []byte(secret),
		now:          time.Now,
	}, nil
}

// Login returns a signed admin token for valid credentials.
func (a *Authenticator) Login(username, password string) (string, error) {
	if len(a.secret) == 0 {
		return "", ErrMissingSecret
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	if !CheckPasswordHash(password, a.passwordHash) || !userOK {
		return "", ErrInvalidCredentials
	}

	now := a.now()
	claims := Claims{
		Username: a.username,
		Role:     RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

func (a *Authenticator) Verify(tokenStr string) (*Claims, error) {
	if len(a.secret) == 0 {
		return nil, ErrMissingSecret
	}

	token, err := jwt.ParseWithClaims(
		tokenStr,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return a.secret, nil
		},
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Role != RoleAdmin {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
