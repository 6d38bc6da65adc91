package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"yamdb-api/logger"
	"yamdb-api/models"
	"yamdb-api/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type IntegrationTestSuite struct {
	suite.Suite
	db     *gorm.DB
	mail   *testutil.Mailer
	svc    *Services
	router http.Handler

	adminToken     string
	moderatorToken string
	aliceToken     string
	bobToken       string
}

func (suite *IntegrationTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	cfg := testutil.Config()
	suite.db = testutil.NewDB(suite.T())
	suite.mail = &testutil.Mailer{}
	suite.svc = NewServices(suite.db, cfg, suite.mail, logger.Discard())
	suite.router = SetupRouter(suite.svc, cfg, logger.Discard())

	suite.adminToken = suite.createUser("root", models.RoleAdmin)
	suite.moderatorToken = suite.createUser("mod", models.RoleModerator)
	suite.aliceToken = suite.createUser("alice", models.RoleUser)
	suite.bobToken = suite.createUser("bob", models.RoleUser)
}

func (suite *IntegrationTestSuite) createUser(username string, role models.UserRole) string {
	user := &models.User{Username: username, Email: username + "@example.com", IsActive: true}
	user.ApplyRole(role)
	suite.Require().NoError(suite.db.Create(user).Error)

	token, err := suite.svc.Tokens.MintAccessToken(user)
	suite.Require().NoError(err)
	return token
}

func (suite *IntegrationTestSuite) request(method, path string, payload interface{}, token string) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		suite.Require().NoError(json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *IntegrationTestSuite) decode(w *httptest.ResponseRecorder, out interface{}) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func (suite *IntegrationTestSuite) code(username, email string) string {
	code, err := suite.svc.Tokens.MintConfirmationCode(username, email)
	suite.Require().NoError(err)
	return code
}

func (suite *IntegrationTestSuite) TestSignupTokenAndMe() {
	w := suite.request(http.MethodPost, "/v1/auth/signup/", gin.H{"username": "carol", "email": "carol@x.com"}, "")
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.JSONEq(`{"username":"carol","email":"carol@x.com"}`, w.Body.String())
	suite.Len(suite.mail.SentTo("carol@x.com"), 1)

	w = suite.request(http.MethodPost, "/v1/auth/token/", gin.H{
		"username": "carol", "confirmation_code": suite.code("carol", "other@x.com"),
	}, "")
	suite.Equal(http.StatusNotFound, w.Code)
	var fieldErrs map[string][]string
	suite.decode(w, &fieldErrs)
	suite.Contains(fieldErrs, "confirmation_code")

	w = suite.request(http.MethodPost, "/v1/auth/token/", gin.H{
		"username": "carol", "confirmation_code": suite.code("carol", "carol@x.com"),
	}, "")
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var token models.TokenResponse
	suite.decode(w, &token)
	suite.NotEmpty(token.Token)

	w = suite.request(http.MethodGet, "/v1/users/me/", nil, token.Token)
	suite.Require().Equal(http.StatusOK, w.Code)
	var me models.User
	suite.decode(w, &me)
	suite.Equal("carol", me.Username)
	suite.Equal(models.RoleUser, me.Role)

	w = suite.request(http.MethodPatch, "/v1/users/me/", gin.H{"role": "admin", "bio": "hello"}, token.Token)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.decode(w, &me)
	suite.Equal(models.RoleUser, me.Role)
	suite.Equal("hello", me.Bio)

	w = suite.request(http.MethodGet, "/v1/users/", nil, token.Token)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *IntegrationTestSuite) TestSignupValidation() {
	w := suite.request(http.MethodPost, "/v1/auth/signup/", gin.H{"username": "Me", "email": "me@x.com"}, "")
	suite.Equal(http.StatusBadRequest, w.Code)
	var fieldErrs map[string][]string
	suite.decode(w, &fieldErrs)
	suite.Contains(fieldErrs, "username")

	w = suite.request(http.MethodPost, "/v1/auth/signup/", nil, "")
	suite.Equal(http.StatusBadRequest, w.Code)
	fieldErrs = nil
	suite.decode(w, &fieldErrs)
	suite.Contains(fieldErrs, "username")
	suite.Contains(fieldErrs, "email")

	w = suite.request(http.MethodPost, "/v1/auth/signup/", gin.H{"username": "alice", "email": "new@x.com"}, "")
	suite.Equal(http.StatusBadRequest, w.Code)
	fieldErrs = nil
	suite.decode(w, &fieldErrs)
	suite.Contains(fieldErrs, "username")
}

func (suite *IntegrationTestSuite) TestTokenFailuresAreNotFound() {
	w := suite.request(http.MethodPost, "/v1/auth/token/", gin.H{"username": "ghost", "confirmation_code": "x"}, "")
	suite.Equal(http.StatusNotFound, w.Code)
	var fieldErrs map[string][]string
	suite.decode(w, &fieldErrs)
	suite.Contains(fieldErrs, "username")

	w = suite.request(http.MethodPost, "/v1/auth/token/", gin.H{"username": "alice"}, "")
	suite.Equal(http.StatusNotFound, w.Code)
	fieldErrs = nil
	suite.decode(w, &fieldErrs)
	suite.Contains(fieldErrs, "confirmation_code")

	w = suite.request(http.MethodPost, "/v1/auth/token/", gin.H{}, "")
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *IntegrationTestSuite) TestUserAdministration() {
	suite.Equal(http.StatusUnauthorized, suite.request(http.MethodGet, "/v1/users/", nil, "").Code)
	suite.Equal(http.StatusUnauthorized, suite.request(http.MethodGet, "/v1/users/me/", nil, "").Code)
	suite.Equal(http.StatusForbidden, suite.request(http.MethodGet, "/v1/users/", nil, suite.moderatorToken).Code)

	w := suite.request(http.MethodGet, "/v1/users/?search=ali", nil, suite.adminToken)
	suite.Require().Equal(http.StatusOK, w.Code)
	var page struct {
		Count   int64         `json:"count"`
		Results []models.User `json:"results"`
	}
	suite.decode(w, &page)
	suite.Equal(int64(1), page.Count)
	suite.Equal("alice", page.Results[0].Username)

	w = suite.request(http.MethodPost, "/v1/users/", gin.H{"username": "dave", "email": "dave@x.com", "role": "moderator"}, suite.adminToken)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	suite.Len(suite.mail.SentTo("dave@x.com"), 1)

	w = suite.request(http.MethodPatch, "/v1/users/dave/", gin.H{"role": "admin"}, suite.adminToken)
	suite.Require().Equal(http.StatusOK, w.Code)
	var dave models.User
	suite.Require().NoError(suite.db.Where("username = ?", "dave").First(&dave).Error)
	suite.True(dave.IsStaff)

	suite.Equal(http.StatusMethodNotAllowed, suite.request(http.MethodPut, "/v1/users/dave/", gin.H{}, suite.adminToken).Code)
	suite.Equal(http.StatusNoContent, suite.request(http.MethodDelete, "/v1/users/dave/", nil, suite.adminToken).Code)
	suite.Equal(http.StatusNotFound, suite.request(http.MethodGet, "/v1/users/dave/", nil, suite.adminToken).Code)
}

func (suite *IntegrationTestSuite) TestCategoryRoutes() {
	suite.Equal(http.StatusOK, suite.request(http.MethodGet, "/v1/categories/", nil, "").Code)
	suite.Equal(http.StatusUnauthorized, suite.request(http.MethodPost, "/v1/categories/", gin.H{"name": "Movie", "slug": "movie"}, "").Code)
	suite.Equal(http.StatusForbidden, suite.request(http.MethodPost, "/v1/categories/", gin.H{"name": "Movie", "slug": "movie"}, suite.moderatorToken).Code)

	w := suite.request(http.MethodPost, "/v1/categories/", gin.H{"name": "Movie", "slug": "movie"}, suite.adminToken)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	suite.JSONEq(`{"name":"Movie","slug":"movie"}`, w.Body.String())

	w = suite.request(http.MethodPost, "/v1/categories/", gin.H{"name": "Films", "slug": "movie"}, suite.adminToken)
	suite.Equal(http.StatusBadRequest, w.Code)

	// Refused before the permission check.
	suite.Equal(http.StatusMethodNotAllowed, suite.request(http.MethodGet, "/v1/categories/movie/", nil, "").Code)
	suite.Equal(http.StatusMethodNotAllowed, suite.request(http.MethodPut, "/v1/categories/movie/", gin.H{}, "").Code)
	suite.Equal(http.StatusMethodNotAllowed, suite.request(http.MethodGet, "/v1/genres/drama/", nil, "").Code)

	suite.Equal(http.StatusUnauthorized, suite.request(http.MethodDelete, "/v1/categories/movie/", nil, "").Code)
	w = suite.request(http.MethodPatch, "/v1/categories/movie/", gin.H{"name": "Movies"}, suite.adminToken)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(http.StatusNoContent, suite.request(http.MethodDelete, "/v1/categories/movie/", nil, suite.adminToken).Code)
	suite.Equal(http.StatusNotFound, suite.request(http.MethodDelete, "/v1/categories/movie/", nil, suite.adminToken).Code)
}

func (suite *IntegrationTestSuite) createTitle() uint {
	suite.Require().Equal(http.StatusCreated, suite.request(http.MethodPost, "/v1/categories/", gin.H{"name": "Movie", "slug": "movie"}, suite.adminToken).Code)
	suite.Require().Equal(http.StatusCreated, suite.request(http.MethodPost, "/v1/genres/", gin.H{"name": "Drama", "slug": "drama"}, suite.adminToken).Code)

	w := suite.request(http.MethodPost, "/v1/titles/", gin.H{
		"name": "Heat", "year": 1995, "category": "movie", "genre": []string{"drama"},
	}, suite.adminToken)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var title models.TitleWriteResponse
	suite.decode(w, &title)
	return title.ID
}

func (suite *IntegrationTestSuite) TestTitlesAndReviews() {
	suite.Equal(http.StatusForbidden, suite.request(http.MethodPost, "/v1/titles/", gin.H{"name": "X", "category": "movie"}, suite.aliceToken).Code)
	id := suite.createTitle()
	reviews := fmt.Sprintf("/v1/titles/%d/reviews/", id)

	w := suite.request(http.MethodPost, reviews, gin.H{"text": "great", "score": 9}, "")
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.request(http.MethodPost, reviews, gin.H{"text": "great", "score": 9}, suite.aliceToken)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var review models.ReviewResponse
	suite.decode(w, &review)
	suite.Equal("alice", review.Author)
	suite.Equal(id, review.Title)

	w = suite.request(http.MethodPost, reviews, gin.H{"text": "again", "score": 1}, suite.aliceToken)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPost, reviews, gin.H{"text": "meh", "score": 6}, suite.bobToken)
	suite.Require().Equal(http.StatusCreated, w.Code)

	w = suite.request(http.MethodPost, reviews, gin.H{"text": "bad score", "score": 11}, suite.moderatorToken)
	suite.Equal(http.StatusBadRequest, w.Code)

	item := fmt.Sprintf("%s%d/", reviews, review.ID)
	suite.Equal(http.StatusForbidden, suite.request(http.MethodPatch, item, gin.H{"score": 1}, suite.bobToken).Code)
	suite.Equal(http.StatusOK, suite.request(http.MethodPatch, item, gin.H{"score": 8}, suite.aliceToken).Code)
	suite.Equal(http.StatusOK, suite.request(http.MethodPatch, item, gin.H{"text": "edited"}, suite.moderatorToken).Code)

	w = suite.request(http.MethodGet, fmt.Sprintf("/v1/titles/%d/", id), nil, "")
	suite.Require().Equal(http.StatusOK, w.Code)
	var title models.TitleResponse
	suite.decode(w, &title)
	suite.Require().NotNil(title.Rating)
	suite.Equal(7, *title.Rating)
	suite.Equal("movie", title.Category.Slug)

	w = suite.request(http.MethodGet, "/v1/titles/?genre=drama&year=1995", nil, "")
	suite.Require().Equal(http.StatusOK, w.Code)
	var page models.Page
	suite.decode(w, &page)
	suite.Equal(int64(1), page.Count)

	suite.Equal(http.StatusNotFound, suite.request(http.MethodGet, "/v1/titles/999/reviews/", nil, "").Code)
	suite.Equal(http.StatusNotFound, suite.request(http.MethodGet, "/v1/titles/?page=5", nil, "").Code)

	suite.Equal(http.StatusNoContent, suite.request(http.MethodDelete, item, nil, suite.adminToken).Code)
}

func (suite *IntegrationTestSuite) TestComments() {
	id := suite.createTitle()
	w := suite.request(http.MethodPost, fmt.Sprintf("/v1/titles/%d/reviews/", id), gin.H{"text": "great", "score": 9}, suite.aliceToken)
	suite.Require().Equal(http.StatusCreated, w.Code)
	var review models.ReviewResponse
	suite.decode(w, &review)

	comments := fmt.Sprintf("/v1/titles/%d/reviews/%d/comments/", id, review.ID)
	w = suite.request(http.MethodPost, comments, gin.H{"text": "agreed"}, suite.bobToken)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var comment models.CommentResponse
	suite.decode(w, &comment)
	suite.Equal("bob", comment.Author)
	suite.Equal("great", comment.Review)

	item := fmt.Sprintf("%s%d/", comments, comment.ID)
	suite.Equal(http.StatusOK, suite.request(http.MethodGet, item, nil, "").Code)
	suite.Equal(http.StatusForbidden, suite.request(http.MethodDelete, item, nil, suite.aliceToken).Code)
	suite.Equal(http.StatusOK, suite.request(http.MethodPut, item, gin.H{"text": "fully agreed"}, suite.bobToken).Code)
	suite.Equal(http.StatusNoContent, suite.request(http.MethodDelete, item, nil, suite.moderatorToken).Code)
	suite.Equal(http.StatusNotFound, suite.request(http.MethodGet, item, nil, "").Code)
}

func (suite *IntegrationTestSuite) TestServiceEndpoints() {
	w := suite.request(http.MethodGet, "/health", nil, "")
	suite.Equal(http.StatusOK, w.Code)

	suite.request(http.MethodGet, "/v1/categories/", nil, "")
	w = suite.request(http.MethodGet, "/metrics", nil, "")
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "yamdb_http_requests_total")

	w = suite.request(http.MethodGet, "/v1/nowhere/", nil, "")
	suite.Equal(http.StatusNotFound, w.Code)
	suite.JSONEq(`{"detail":"Not found."}`, w.Body.String())
}

func TestIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}
