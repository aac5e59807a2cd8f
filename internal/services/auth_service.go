package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/yukikurage/taskman-api/internal/constants"
	"github.com/yukikurage/taskman-api/internal/models"
	"github.com/yukikurage/taskman-api/internal/repository"
	"github.com/yukikurage/taskman-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// the response never reveals which part failed.
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInvalidToken         = errors.New("invalid or revoked token")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthService handles registration, authentication, token lifecycle, and
// profile management.
type AuthService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

// Register creates a new user after validating the registration fields.
// Violations are accumulated into a ValidationError keyed by field name.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	v := newValidationError()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		v.add("name", "The name field is required.")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if err := s.validateEmail(v, email, 0); err != nil {
		return nil, err
	}

	s.validatePassword(v, input.Password, input.PasswordConfirmation)

	if v.hasErrors() {
		return nil, v
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the user together with a freshly
// minted bearer token. The token plaintext is only available here; the store
// keeps its digest.
func (s *AuthService) Login(input LoginInput) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	record := &models.AccessToken{
		UserID:    user.ID,
		TokenHash: utils.HashToken(token),
	}
	if err := s.tokenRepo.Create(record); err != nil {
		return nil, "", fmt.Errorf("failed to store token: %w", err)
	}

	return user, token, nil
}

// ResolveToken returns the user bound to a valid, non-revoked bearer token.
func (s *AuthService) ResolveToken(token string) (*models.User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.tokenRepo.FindUserByHash(utils.HashToken(token))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to resolve token: %w", err)
	}

	return user, nil
}

// Revoke invalidates a bearer token. Revoking an already-revoked or unknown
// token is a no-op.
func (s *AuthService) Revoke(token string) error {
	if token == "" {
		return nil
	}

	if err := s.tokenRepo.DeleteByHash(utils.HashToken(token)); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// UpdateProfileInput represents a partial profile update. Nil fields are left
// untouched.
type UpdateProfileInput struct {
	Name                 *string
	Email                *string
	Password             *string
	PasswordConfirmation *string
}

// UpdateProfile applies a partial update to the user's profile.
func (s *AuthService) UpdateProfile(userID uint64, input UpdateProfileInput) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	v := newValidationError()

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			v.add("name", "The name field is required.")
		} else {
			user.Name = name
		}
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if err := s.validateEmail(v, email, userID); err != nil {
			return nil, err
		}
		if !v.hasErrors() {
			user.Email = email
		}
	}

	if input.Password != nil {
		confirmation := ""
		if input.PasswordConfirmation != nil {
			confirmation = *input.PasswordConfirmation
		}
		s.validatePassword(v, *input.Password, confirmation)

		if !v.hasErrors() {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
			if err != nil {
				return nil, ErrFailedToHashPassword
			}
			user.PasswordHash = string(hashedPassword)
		}
	}

	if v.hasErrors() {
		return nil, v
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// DeleteAccount removes the user and cascades to their tasks and tokens.
func (s *AuthService) DeleteAccount(userID uint64) error {
	if _, err := s.GetUser(userID); err != nil {
		return err
	}

	if err := s.userRepo.DeleteWithOwnedData(userID); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	return nil
}

// ListUsers returns every registered user. Listing is administrative and not
// ownership-scoped.
func (s *AuthService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// DeleteAllUsers removes every user together with their tasks and tokens,
// returning the number of users deleted.
func (s *AuthService) DeleteAllUsers() (int64, error) {
	count, err := s.userRepo.DeleteAll()
	if err != nil {
		return 0, fmt.Errorf("failed to delete users: %w", err)
	}

	return count, nil
}

// validateEmail accumulates format, length, and uniqueness violations into v.
// excludeID skips the uniqueness check for that user so profile updates can
// keep the same address. The returned error is reserved for storage failures.
func (s *AuthService) validateEmail(v *ValidationError, email string, excludeID uint64) error {
	if email == "" {
		v.add("email", "The email field is required.")
		return nil
	}

	ok := true
	if len(email) > constants.MaxEmailLength {
		v.add("email", "The email may not be greater than 255 characters.")
		ok = false
	}
	if !emailPattern.MatchString(email) {
		v.add("email", "The email must be a valid email address.")
		ok = false
	}
	if !ok {
		return nil
	}

	existing, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check email: %w", err)
	}
	if existing.ID != excludeID {
		v.add("email", "The email has already been taken.")
	}

	return nil
}

func (s *AuthService) validatePassword(v *ValidationError, password, confirmation string) {
	if password == "" {
		v.add("password", "The password field is required.")
		return
	}
	if len(password) < constants.MinPasswordLength {
		v.add("password", fmt.Sprintf("The password must be at least %d characters.", constants.MinPasswordLength))
	}
	if password != confirmation {
		v.add("password_confirmation", "The password confirmation does not match.")
	}
}
