package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/taskman-api/internal/models"
	"github.com/yukikurage/taskman-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// AuthServiceTestSuite defines the test suite for AuthService
type AuthServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AuthService
}

// SetupTest runs before each test
func (suite *AuthServiceTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.AccessToken{}, &models.Task{})
	suite.Require().NoError(err)

	suite.service = NewAuthService(
		repository.NewUserRepository(suite.db),
		repository.NewTokenRepository(suite.db),
	)
}

// TearDownTest runs after each test
func (suite *AuthServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func validRegistration() RegisterInput {
	return RegisterInput{
		Name:                 "Alice",
		Email:                "alice@example.com",
		Password:             "supersecret",
		PasswordConfirmation: "supersecret",
	}
}

func (suite *AuthServiceTestSuite) TestRegister_NormalizesEmail() {
	input := validRegistration()
	input.Email = "  Alice@Example.COM "

	user, err := suite.service.Register(input)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), "alice@example.com", user.Email)
	assert.NotEqual(suite.T(), "supersecret", user.PasswordHash)
}

func (suite *AuthServiceTestSuite) TestRegister_AccumulatesAllViolations() {
	_, err := suite.service.Register(RegisterInput{
		Name:                 "",
		Email:                "not-an-email",
		Password:             "short",
		PasswordConfirmation: "different",
	})

	var vErr *ValidationError
	suite.Require().ErrorAs(err, &vErr)
	assert.Contains(suite.T(), vErr.Fields, "name")
	assert.Contains(suite.T(), vErr.Fields, "email")
	assert.Contains(suite.T(), vErr.Fields, "password")
	assert.Contains(suite.T(), vErr.Fields, "password_confirmation")
}

func (suite *AuthServiceTestSuite) TestRegister_DuplicateEmailCaseInsensitive() {
	_, err := suite.service.Register(validRegistration())
	suite.Require().NoError(err)

	input := validRegistration()
	input.Email = "ALICE@example.com"
	_, err = suite.service.Register(input)

	var vErr *ValidationError
	suite.Require().ErrorAs(err, &vErr)
	assert.Contains(suite.T(), vErr.Fields, "email")
}

func (suite *AuthServiceTestSuite) TestLogin_IssuesResolvableToken() {
	registered, err := suite.service.Register(validRegistration())
	suite.Require().NoError(err)

	user, token, err := suite.service.Login(LoginInput{
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), registered.ID, user.ID)
	assert.NotEmpty(suite.T(), token)

	// The plaintext never hits the database
	var stored models.AccessToken
	suite.Require().NoError(suite.db.First(&stored).Error)
	assert.NotEqual(suite.T(), token, stored.TokenHash)

	resolved, err := suite.service.ResolveToken(token)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), registered.ID, resolved.ID)
}

func (suite *AuthServiceTestSuite) TestLogin_BadCredentialsAreIndistinguishable() {
	_, err := suite.service.Register(validRegistration())
	suite.Require().NoError(err)

	_, _, unknownErr := suite.service.Login(LoginInput{
		Email:    "nobody@example.com",
		Password: "supersecret",
	})
	_, _, wrongErr := suite.service.Login(LoginInput{
		Email:    "alice@example.com",
		Password: "wrongpassword",
	})

	assert.ErrorIs(suite.T(), unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(suite.T(), wrongErr, ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestResolveToken_Invalid() {
	_, err := suite.service.ResolveToken("")
	assert.ErrorIs(suite.T(), err, ErrInvalidToken)

	_, err = suite.service.ResolveToken("deadbeef")
	assert.ErrorIs(suite.T(), err, ErrInvalidToken)
}

func (suite *AuthServiceTestSuite) TestRevoke_IsIdempotent() {
	_, err := suite.service.Register(validRegistration())
	suite.Require().NoError(err)

	_, token, err := suite.service.Login(LoginInput{
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.Revoke(token))

	_, err = suite.service.ResolveToken(token)
	assert.ErrorIs(suite.T(), err, ErrInvalidToken)

	// Revoking again is a no-op
	assert.NoError(suite.T(), suite.service.Revoke(token))
}

func (suite *AuthServiceTestSuite) TestUpdateProfile_KeepsOwnEmail() {
	user, err := suite.service.Register(validRegistration())
	suite.Require().NoError(err)

	email := "alice@example.com"
	updated, err := suite.service.UpdateProfile(user.ID, UpdateProfileInput{Email: &email})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), email, updated.Email)
}

func (suite *AuthServiceTestSuite) TestUpdateProfile_PasswordNeedsConfirmation() {
	user, err := suite.service.Register(validRegistration())
	suite.Require().NoError(err)

	password := "newersecret"
	_, err = suite.service.UpdateProfile(user.ID, UpdateProfileInput{Password: &password})

	var vErr *ValidationError
	suite.Require().ErrorAs(err, &vErr)
	assert.Contains(suite.T(), vErr.Fields, "password_confirmation")
}

func (suite *AuthServiceTestSuite) TestUpdateProfile_ChangesPassword() {
	user, err := suite.service.Register(validRegistration())
	suite.Require().NoError(err)

	password := "newersecret"
	_, err = suite.service.UpdateProfile(user.ID, UpdateProfileInput{
		Password:             &password,
		PasswordConfirmation: &password,
	})
	suite.Require().NoError(err)

	_, _, err = suite.service.Login(LoginInput{Email: "alice@example.com", Password: "supersecret"})
	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)

	_, _, err = suite.service.Login(LoginInput{Email: "alice@example.com", Password: password})
	assert.NoError(suite.T(), err)
}

func (suite *AuthServiceTestSuite) TestDeleteAccount_Unknown() {
	err := suite.service.DeleteAccount(9999)
	assert.ErrorIs(suite.T(), err, ErrUserNotFound)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
