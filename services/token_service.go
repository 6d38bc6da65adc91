package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"yamdb-api/models"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const accessTokenType = "access"

var (
	ErrDecode           = errors.New("token could not be decoded")
	ErrNotAccessToken   = errors.New("token is not an access token")
	ErrEmptySigningKey  = errors.New("signing key is empty")
	confirmationMethods = []string{jwt.SigningMethodHS256.Alg()}
)

// ConfirmationPayload is the exact body of a confirmation code.
type ConfirmationPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AccessClaims are embedded in every access token.
type AccessClaims struct {
	UserID      uint            `json:"user_id"`
	Username    string          `json:"username"`
	Role        models.UserRole `json:"role"`
	IsSuperuser bool            `json:"is_superuser"`
	IsStaff     bool            `json:"is_staff"`
	TokenType   string          `json:"token_type"`
	jwt.RegisteredClaims
}

type TokenService interface {
	MintConfirmationCode(username, email string) (string, error)
	MintAccessToken(user *models.User) (string, error)
	Decode(code string) (jwt.MapClaims, error)
	DecodeConfirmationCode(code string) (*ConfirmationPayload, error)
	ParseAccessToken(token string) (*AccessClaims, error)
	ExtractRole(token string) models.UserRole
}

type tokenService struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

func NewTokenService(secret []byte, expiration time.Duration) TokenService {
	return &tokenService{
		secret:     secret,
		expiration: expiration,
		now:        time.Now,
	}
}

// MintConfirmationCode signs {username, email} without any time component, so
// the same identity always yields the same code.
func (s *tokenService) MintConfirmationCode(username, email string) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrEmptySigningKey
	}
	claims := jwt.MapClaims{
		"username": username,
		"email":    email,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *tokenService) MintAccessToken(user *models.User) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrEmptySigningKey
	}
	now := s.now()

	claims := &AccessClaims{
		UserID:      user.ID,
		Username:    user.Username,
		Role:        user.Role,
		IsSuperuser: user.IsSuperuser,
		IsStaff:     user.IsStaff,
		TokenType:   accessTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

func (s *tokenService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, jwt.ErrSignatureInvalid
	}
	return s.secret, nil
}

func (s *tokenService) parser() *jwt.Parser {
	return jwt.NewParser(jwt.WithValidMethods(confirmationMethods))
}

// Decode verifies signature, algorithm and expiry (when present) and returns
// the raw payload.
func (s *tokenService) Decode(code string) (jwt.MapClaims, error) {
	if code == "" {
		return nil, ErrDecode
	}
	claims := jwt.MapClaims{}
	token, err := s.parser().ParseWithClaims(code, claims, s.keyFunc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if !token.Valid {
		return nil, ErrDecode
	}
	return claims, nil
}

func (s *tokenService) DecodeConfirmationCode(code string) (*ConfirmationPayload, error) {
	claims, err := s.Decode(code)
	if err != nil {
		return nil, err
	}
	// Missing or non-string claims decode to "", which can never match a
	// stored user.
	username, _ := claims["username"].(string)
	email, _ := claims["email"].(string)
	return &ConfirmationPayload{Username: username, Email: email}, nil
}

// ParseAccessToken accepts only access tokens that carry an expiry. A
// confirmation code signed with the same key is rejected here.
func (s *tokenService) ParseAccessToken(tokenString string) (*AccessClaims, error) {
	if tokenString == "" {
		return nil, ErrDecode
	}
	claims := &AccessClaims{}
	token, err := s.parser().ParseWithClaims(tokenString, claims, s.keyFunc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if !token.Valid {
		return nil, ErrDecode
	}
	if claims.TokenType != accessTokenType || claims.ExpiresAt == nil {
		return nil, ErrNotAccessToken
	}
	return claims, nil
}

// ExtractRole reads the role claim without touching the database. It returns
// an empty role for anything that is not a valid access token.
func (s *tokenService) ExtractRole(tokenString string) models.UserRole {
	claims, err := s.ParseAccessToken(tokenString)
	if err != nil {
		return ""
	}
	return claims.Role
}
