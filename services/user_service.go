package services

import (
	"context"
	"errors"
	"fmt"

	"yamdb-api/models"
	"yamdb-api/repositories"

	"github.com/op/go-logging"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService interface {
	List(params models.ListParams, offset, limit int) ([]models.User, int64, error)
	Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error)
	Get(username string) (*models.User, error)
	Update(ctx context.Context, username string, req models.UpdateUserRequest) (*models.User, error)
	Delete(username string) error
	GetMe(id uint) (*models.User, error)
	UpdateMe(ctx context.Context, id uint, req models.UpdateUserRequest) (*models.User, error)
	EnsureSuperuser(ctx context.Context, username, email, password string) error
}

type userService struct {
	userRepo repositories.UserRepository
	auth     AuthService
	log      *logging.Logger
}

func NewUserService(userRepo repositories.UserRepository, auth AuthService, log *logging.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		auth:     auth,
		log:      log,
	}
}

func (s *userService) List(params models.ListParams, offset, limit int) ([]models.User, int64, error) {
	users, total, err := s.userRepo.GetList(params, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

// Create provisions an active account and emails its confirmation code.
func (s *userService) Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	if models.ForbiddenUsername(req.Username) {
		return nil, models.NewValidationError("username", msgMeNotAllowed)
	}
	if err := s.checkUnique(0, req.Username, req.Email); err != nil {
		return nil, err
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		IsActive:  true,
	}
	user.ApplyRole(req.Role)

	err := s.userRepo.Transaction(func(repo repositories.UserRepository) error {
		if err := repo.Create(user); err != nil {
			return err
		}
		return s.auth.SendConfirmationCode(ctx, user)
	})
	if err != nil {
		return nil, writeError(err, "create user", "username", msgUsernameTaken)
	}

	s.log.Infof("user %s provisioned with role %s", user.Username, user.Role)
	return user, nil
}

func (s *userService) Get(username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, lookupError(err, "get user")
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, username string, req models.UpdateUserRequest) (*models.User, error) {
	user, err := s.Get(username)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, user, req)
}

func (s *userService) Delete(username string) error {
	user, err := s.Get(username)
	if err != nil {
		return err
	}
	if err := s.userRepo.Delete(user); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.log.Infof("user %s deleted", user.Username)
	return nil
}

func (s *userService) GetMe(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, lookupError(err, "get current user")
	}
	return user, nil
}

// UpdateMe never changes the role, whatever the payload says.
func (s *userService) UpdateMe(ctx context.Context, id uint, req models.UpdateUserRequest) (*models.User, error) {
	user, err := s.GetMe(id)
	if err != nil {
		return nil, err
	}
	req.Role = nil
	return s.update(ctx, user, req)
}

// update applies a partial payload. A changed username or email re-issues the
// confirmation code in the same transaction as the save.
func (s *userService) update(ctx context.Context, user *models.User, req models.UpdateUserRequest) (*models.User, error) {
	username, email := user.Username, user.Email
	if req.Username != nil {
		username = *req.Username
	}
	if req.Email != nil {
		email = *req.Email
	}
	if models.ForbiddenUsername(username) {
		return nil, models.NewValidationError("username", msgMeNotAllowed)
	}
	if err := s.checkUnique(user.ID, username, email); err != nil {
		return nil, err
	}

	identityChanged := username != user.Username || email != user.Email
	user.Username = username
	user.Email = email
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Role != nil {
		user.ApplyRole(*req.Role)
	}

	err := s.userRepo.Transaction(func(repo repositories.UserRepository) error {
		if err := repo.Update(user); err != nil {
			return err
		}
		if !identityChanged {
			return nil
		}
		return s.auth.SendConfirmationCode(ctx, user)
	})
	if err != nil {
		return nil, writeError(err, "update user", "username", msgUsernameTaken)
	}
	return user, nil
}

// checkUnique reports username/email collisions with any user other than id.
func (s *userService) checkUnique(id uint, username, email string) error {
	verr := &models.ErrorValidation{}

	byName, err := findOptional(s.userRepo.GetByUsername(username))
	if err != nil {
		return fmt.Errorf("lookup username: %w", err)
	}
	if byName != nil && byName.ID != id {
		verr.Add("username", msgUsernameTaken)
	}

	byEmail, err := findOptional(s.userRepo.GetByEmail(email))
	if err != nil {
		return fmt.Errorf("lookup email: %w", err)
	}
	if byEmail != nil && byEmail.ID != id {
		verr.Add("email", msgEmailTaken)
	}

	if verr.Empty() {
		return nil
	}
	return verr
}

// EnsureSuperuser creates the bootstrap administrator once. An empty username
// disables it.
func (s *userService) EnsureSuperuser(ctx context.Context, username, email, password string) error {
	if username == "" {
		return nil
	}
	_, err := s.userRepo.GetByUsername(username)
	if err == nil {
		s.log.Debugf("superuser %s already exists", username)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup superuser: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash superuser password: %w", err)
	}

	user := &models.User{
		Username:    username,
		Email:       email,
		Password:    string(hashed),
		IsActive:    true,
		IsSuperuser: true,
	}
	user.ApplyRole(models.RoleAdmin)

	err = s.userRepo.Transaction(func(repo repositories.UserRepository) error {
		if err := repo.Create(user); err != nil {
			return err
		}
		return s.auth.SendConfirmationCode(ctx, user)
	})
	if err != nil {
		return fmt.Errorf("create superuser: %w", err)
	}
	s.log.Noticef("superuser %s created", username)
	return nil
}
