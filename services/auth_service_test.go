package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"yamdb-api/logger"
	"yamdb-api/models"
	"yamdb-api/repositories"
	"yamdb-api/services"
	"yamdb-api/testutil"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	mail     *testutil.Mailer
	tokens   services.TokenService
	userRepo repositories.UserRepository
	auth     services.AuthService
	users    services.UserService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.db = testutil.NewDB(suite.T())
	suite.mail = &testutil.Mailer{}
	suite.tokens = services.NewTokenService([]byte(testutil.Secret), time.Hour)
	suite.userRepo = repositories.NewUserRepository(suite.db)
	suite.auth = services.NewAuthService(suite.userRepo, suite.tokens, suite.mail, "http://localhost/v1/auth/token/", logger.Discard())
	suite.users = services.NewUserService(suite.userRepo, suite.auth, logger.Discard())
}

func (suite *AuthServiceTestSuite) code(username, email string) string {
	code, err := suite.tokens.MintConfirmationCode(username, email)
	suite.Require().NoError(err)
	return code
}

func (suite *AuthServiceTestSuite) signup(username, email string) {
	_, err := suite.auth.Signup(context.Background(), models.SignupRequest{Username: username, Email: email})
	suite.Require().NoError(err)
}

func (suite *AuthServiceTestSuite) TestSignupCreatesPendingUserAndMailsCode() {
	resp, err := suite.auth.Signup(context.Background(), models.SignupRequest{Username: "bob", Email: "bob@x.com"})
	suite.Require().NoError(err)
	suite.Equal(&models.SignupResponse{Username: "bob", Email: "bob@x.com"}, resp)

	user, err := suite.userRepo.GetByUsername("bob")
	suite.Require().NoError(err)
	suite.False(user.IsActive)
	suite.Equal(models.RoleUser, user.Role)
	suite.False(user.IsStaff)

	sent := suite.mail.SentTo("bob@x.com")
	suite.Require().Len(sent, 1)
	suite.Contains(sent[0].Body, suite.code("bob", "bob@x.com"))
}

func (suite *AuthServiceTestSuite) TestSignupRejectsMe() {
	for _, name := range []string{"me", "Me", "mE", "ME"} {
		_, err := suite.auth.Signup(context.Background(), models.SignupRequest{Username: name, Email: name + "@x.com"})
		var verr *models.ErrorValidation
		suite.Require().True(errors.As(err, &verr), name)
		suite.Contains(verr.Fields, "username")
	}
	suite.Empty(suite.mail.Sent())
}

func (suite *AuthServiceTestSuite) TestSignupRejectsDuplicates() {
	suite.signup("bob", "bob@x.com")

	_, err := suite.auth.Signup(context.Background(), models.SignupRequest{Username: "bob", Email: "other@x.com"})
	var verr *models.ErrorValidation
	suite.Require().True(errors.As(err, &verr))
	suite.Contains(verr.Fields, "username")
	suite.NotContains(verr.Fields, "email")

	_, err = suite.auth.Signup(context.Background(), models.SignupRequest{Username: "robert", Email: "bob@x.com"})
	suite.Require().True(errors.As(err, &verr))
	suite.Contains(verr.Fields, "email")
	suite.NotContains(verr.Fields, "username")
}

func (suite *AuthServiceTestSuite) TestSignupResendsSameCodeWhilePending() {
	suite.signup("bob", "bob@x.com")
	suite.signup("bob", "bob@x.com")

	sent := suite.mail.SentTo("bob@x.com")
	suite.Require().Len(sent, 2)
	suite.Equal(sent[0].Body, sent[1].Body)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.User{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *AuthServiceTestSuite) TestSignupAfterActivationIsDuplicate() {
	suite.signup("bob", "bob@x.com")
	_, err := suite.auth.TokenExchange(models.TokenRequest{Username: "bob", ConfirmationCode: suite.code("bob", "bob@x.com")})
	suite.Require().NoError(err)

	_, err = suite.auth.Signup(context.Background(), models.SignupRequest{Username: "bob", Email: "bob@x.com"})
	var verr *models.ErrorValidation
	suite.True(errors.As(err, &verr))
}

func (suite *AuthServiceTestSuite) TestSignupMailFailureLeavesNoUser() {
	suite.mail.Err = errors.New("smtp down")

	_, err := suite.auth.Signup(context.Background(), models.SignupRequest{Username: "bob", Email: "bob@x.com"})
	suite.Require().Error(err)

	_, err = suite.userRepo.GetByUsername("bob")
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *AuthServiceTestSuite) TestTokenExchangeActivates() {
	suite.signup("bob", "bob@x.com")

	resp, err := suite.auth.TokenExchange(models.TokenRequest{Username: "bob", ConfirmationCode: suite.code("bob", "bob@x.com")})
	suite.Require().NoError(err)
	suite.NotEmpty(resp.Token)

	claims, err := suite.tokens.ParseAccessToken(resp.Token)
	suite.Require().NoError(err)
	suite.Equal("bob", claims.Username)
	suite.Equal(models.RoleUser, claims.Role)

	user, err := suite.userRepo.GetByUsername("bob")
	suite.Require().NoError(err)
	suite.True(user.IsActive)

	// Repeating the exchange stays valid and issues a new token.
	again, err := suite.auth.TokenExchange(models.TokenRequest{Username: "bob", ConfirmationCode: suite.code("bob", "bob@x.com")})
	suite.Require().NoError(err)
	suite.NotEqual(resp.Token, again.Token)
}

func (suite *AuthServiceTestSuite) TestTokenExchangeFailures() {
	suite.signup("bob", "bob@x.com")
	suite.signup("carol", "carol@x.com")

	cases := []struct {
		name  string
		req   models.TokenRequest
		check func(err error) bool
	}{
		{"missing username", models.TokenRequest{ConfirmationCode: suite.code("bob", "bob@x.com")}, isParse},
		{"unknown username", models.TokenRequest{Username: "nobody", ConfirmationCode: suite.code("nobody", "n@x.com")}, isNotFound},
		{"missing code", models.TokenRequest{Username: "bob"}, isParse},
		{"malformed code", models.TokenRequest{Username: "bob", ConfirmationCode: "abc.def.ghi"}, isParse},
		{"other user's code", models.TokenRequest{Username: "bob", ConfirmationCode: suite.code("carol", "carol@x.com")}, isParse},
		{"other email", models.TokenRequest{Username: "bob", ConfirmationCode: suite.code("bob", "bob@y.com")}, isParse},
	}
	for _, tc := range cases {
		_, err := suite.auth.TokenExchange(tc.req)
		suite.True(tc.check(err), "%s: %v", tc.name, err)
	}

	user, err := suite.userRepo.GetByUsername("bob")
	suite.Require().NoError(err)
	suite.False(user.IsActive)
}

func (suite *AuthServiceTestSuite) TestEmailChangeInvalidatesOldCode() {
	suite.signup("alice", "alice@x.com")
	oldCode := suite.code("alice", "alice@x.com")

	resp, err := suite.auth.TokenExchange(models.TokenRequest{Username: "alice", ConfirmationCode: oldCode})
	suite.Require().NoError(err)
	claims, err := suite.tokens.ParseAccessToken(resp.Token)
	suite.Require().NoError(err)

	newEmail := "alice@new.com"
	_, err = suite.users.UpdateMe(context.Background(), claims.UserID, models.UpdateUserRequest{Email: &newEmail})
	suite.Require().NoError(err)
	suite.Len(suite.mail.SentTo(newEmail), 1)

	_, err = suite.auth.TokenExchange(models.TokenRequest{Username: "alice", ConfirmationCode: oldCode})
	suite.True(isParse(err), "%v", err)

	_, err = suite.auth.TokenExchange(models.TokenRequest{Username: "alice", ConfirmationCode: suite.code("alice", newEmail)})
	suite.NoError(err)
}

func isParse(err error) bool {
	var perr *models.ErrorParse
	return errors.As(err, &perr)
}

func isNotFound(err error) bool {
	var nerr *models.ErrorNotFound
	return errors.As(err, &nerr)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
