package services

import (
	"context"
	"errors"
	"fmt"

	"yamdb-api/mailer"
	"yamdb-api/models"
	"yamdb-api/repositories"

	"github.com/op/go-logging"
	"gorm.io/gorm"
)

const (
	msgUserNotFound    = "User with this username does not exist."
	msgInvalidCode     = "Invalid confirmation code."
	msgMeNotAllowed    = "Username \"me\" is not allowed."
	msgInvalidUsername = "Enter a valid username. It may contain only letters, digits and @/./+/-/_ characters."
)

// AuthService drives an account from UNREGISTERED through PENDING to ACTIVE.
type AuthService interface {
	Signup(ctx context.Context, req models.SignupRequest) (*models.SignupResponse, error)
	TokenExchange(req models.TokenRequest) (*models.TokenResponse, error)
	// SendConfirmationCode mints the code for the user's current identity and
	// emails it. Any previously sent code for another identity stops working.
	SendConfirmationCode(ctx context.Context, user *models.User) error
}

type authService struct {
	userRepo repositories.UserRepository
	tokens   TokenService
	mail     mailer.Mailer
	tokenURL string
	log      *logging.Logger
}

func NewAuthService(userRepo repositories.UserRepository, tokens TokenService, mail mailer.Mailer, tokenURL string, log *logging.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		mail:     mail,
		tokenURL: tokenURL,
		log:      log,
	}
}

func (s *authService) Signup(ctx context.Context, req models.SignupRequest) (*models.SignupResponse, error) {
	if models.ForbiddenUsername(req.Username) {
		return nil, models.NewValidationError("username", msgMeNotAllowed)
	}
	if !models.ValidUsername(req.Username) {
		return nil, models.NewValidationError("username", msgInvalidUsername)
	}

	byName, err := findOptional(s.userRepo.GetByUsername(req.Username))
	if err != nil {
		return nil, fmt.Errorf("signup: lookup username: %w", err)
	}
	byEmail, err := findOptional(s.userRepo.GetByEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf("signup: lookup email: %w", err)
	}

	// Same identity, not yet activated: send the same code again.
	if byName != nil && byName.Email == req.Email && !byName.IsActive {
		if err := s.SendConfirmationCode(ctx, byName); err != nil {
			return nil, err
		}
		s.log.Infof("confirmation code resent to %s", byName.Username)
		return &models.SignupResponse{Username: byName.Username, Email: byName.Email}, nil
	}

	verr := &models.ErrorValidation{}
	if byName != nil {
		verr.Add("username", msgUsernameTaken)
	}
	if byEmail != nil {
		verr.Add("email", msgEmailTaken)
	}
	if !verr.Empty() {
		return nil, verr
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Role:     models.RoleUser,
	}
	err = s.userRepo.Transaction(func(repo repositories.UserRepository) error {
		if err := repo.Create(user); err != nil {
			return err
		}
		return s.SendConfirmationCode(ctx, user)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewValidationError("username", msgUsernameTaken)
		}
		return nil, fmt.Errorf("signup: %w", err)
	}

	s.log.Infof("user %s signed up", user.Username)
	return &models.SignupResponse{Username: user.Username, Email: user.Email}, nil
}

// TokenExchange checks, in order: username present, user exists, code present,
// code decodes, and the decoded identity matches the stored one.
func (s *authService) TokenExchange(req models.TokenRequest) (*models.TokenResponse, error) {
	if req.Username == "" {
		return nil, &models.ErrorParse{Field: "username", Message: msgRequired}
	}

	user, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.ErrorNotFound{Field: "username", Message: msgUserNotFound}
		}
		return nil, fmt.Errorf("token: lookup user: %w", err)
	}

	if req.ConfirmationCode == "" {
		return nil, &models.ErrorParse{Field: "confirmation_code", Message: msgRequired}
	}

	payload, err := s.tokens.DecodeConfirmationCode(req.ConfirmationCode)
	if err != nil {
		s.log.Warningf("rejected confirmation code for %s: %v", req.Username, err)
		return nil, &models.ErrorParse{Field: "confirmation_code", Message: msgInvalidCode}
	}
	if payload.Username != user.Username || payload.Email != user.Email {
		s.log.Warningf("confirmation code identity mismatch for %s", req.Username)
		return nil, &models.ErrorParse{Field: "confirmation_code", Message: msgInvalidCode}
	}

	if !user.IsActive {
		user.IsActive = true
		if err := s.userRepo.Update(user); err != nil {
			return nil, fmt.Errorf("token: activate user: %w", err)
		}
		s.log.Infof("user %s activated", user.Username)
	}

	token, err := s.tokens.MintAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("token: %w", err)
	}
	return &models.TokenResponse{Token: token}, nil
}

func (s *authService) SendConfirmationCode(ctx context.Context, user *models.User) error {
	code, err := s.tokens.MintConfirmationCode(user.Username, user.Email)
	if err != nil {
		return fmt.Errorf("mint confirmation code: %w", err)
	}
	msg := mailer.ConfirmationMessage(user.Email, user.Username, code, s.tokenURL)
	if err := s.mail.Send(ctx, msg); err != nil {
		return fmt.Errorf("send confirmation code: %w", err)
	}
	return nil
}
