package helper

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"yamdb-api/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/op/go-logging"
	"gopkg.in/go-playground/validator.v9"
	en_translations "gopkg.in/go-playground/validator.v9/translations/en"
)

const (
	detailKey         = "detail"
	nonFieldErrorsKey = "non_field_errors"
	internalErrorText = "A server error occurred."
	invalidPageText   = "Invalid page."
	defaultPageSize   = 10
	firstPage         = 1
)

// HTTPHelper ...
type HTTPHelper struct {
	Validate   *validator.Validate
	Translator ut.Translator
	Log        *logging.Logger
	PageSize   int
}

// NewHTTPHelper builds the validator with English messages and the custom tags
// used by request DTOs.
func NewHTTPHelper(log *logging.Logger, pageSize int) *HTTPHelper {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")

	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	custom := []struct {
		tag     string
		fn      validator.Func
		message string
	}{
		{"username", func(fl validator.FieldLevel) bool {
			return models.ValidUsername(fl.Field().String())
		}, "{0} may contain only letters, digits and @/./+/-/_ characters"},
		{"notme", func(fl validator.FieldLevel) bool {
			return !models.ForbiddenUsername(fl.Field().String())
		}, "{0} \"me\" is not allowed"},
		{"slug", func(fl validator.FieldLevel) bool {
			return models.ValidSlug(fl.Field().String())
		}, "{0} may contain only letters, digits, hyphens and underscores"},
		{"notfuture", func(fl validator.FieldLevel) bool {
			return models.ValidYear(int(fl.Field().Int()))
		}, "{0} cannot be later than the current year"},
	}
	for _, c := range custom {
		_ = v.RegisterValidation(c.tag, c.fn)
		registerTranslation(v, trans, c.tag, c.message)
	}

	return &HTTPHelper{
		Validate:   v,
		Translator: trans,
		Log:        log,
		PageSize:   pageSize,
	}
}

func registerTranslation(v *validator.Validate, trans ut.Translator, tag, message string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error {
			return t.Add(tag, message, true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, err := t.T(tag, fe.Field())
			if err != nil {
				return fe.Field() + " is invalid"
			}
			return msg
		})
}

// ValidateStruct runs the DTO validators and converts failures into a
// field level models.ErrorValidation.
func (u *HTTPHelper) ValidateStruct(req interface{}) error {
	err := u.Validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &models.ErrorValidation{}
	for _, fe := range verrs {
		out.Add(fe.Field(), fe.Translate(u.Translator))
	}
	return out
}

// GetStatusCode maps a service error onto an HTTP status.
func (u *HTTPHelper) GetStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var (
		validationErr   *models.ErrorValidation
		parseErr        *models.ErrorParse
		notFoundErr     *models.ErrorNotFound
		unauthorizedErr *models.ErrorUnauthorized
		forbiddenErr    *models.ErrorForbidden
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &parseErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &unauthorizedErr):
		return http.StatusUnauthorized
	case errors.As(err, &forbiddenErr):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// ErrorBody renders err as a field error map or a {"detail": ...} object.
func (u *HTTPHelper) ErrorBody(err error) interface{} {
	var (
		validationErr *models.ErrorValidation
		parseErr      *models.ErrorParse
		notFoundErr   *models.ErrorNotFound
	)
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Fields
	case errors.As(err, &parseErr):
		field := parseErr.Field
		if field == "" {
			field = nonFieldErrorsKey
		}
		return map[string][]string{field: {parseErr.Message}}
	case errors.As(err, &notFoundErr) && notFoundErr.Field != "":
		return map[string][]string{notFoundErr.Field: {notFoundErr.Message}}
	}

	if u.GetStatusCode(err) == http.StatusInternalServerError {
		return gin.H{detailKey: internalErrorText}
	}
	return gin.H{detailKey: err.Error()}
}

// SendError ...
// Send error response to consumers, logging anything unexpected.
func (u *HTTPHelper) SendError(c *gin.Context, err error) {
	u.SendErrorWithStatus(c, u.GetStatusCode(err), err)
}

// SendErrorWithStatus sends err's body with a fixed status.
func (u *HTTPHelper) SendErrorWithStatus(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError && u.Log != nil {
		u.Log.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(status, u.ErrorBody(err))
}

// SendDetail sends {"detail": message}.
func (u *HTTPHelper) SendDetail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{detailKey: message})
}

// SendBindError reports a body that could not be decoded.
func (u *HTTPHelper) SendBindError(c *gin.Context, err error) {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, map[string][]string{
			typeErr.Field: {fmt.Sprintf("Expected a value of type %s.", typeErr.Type)},
		})
	case errors.As(err, &syntaxErr):
		u.SendDetail(c, http.StatusBadRequest, "JSON parse error - "+syntaxErr.Error())
	default:
		u.SendDetail(c, http.StatusBadRequest, err.Error())
	}
}

// MethodNotAllowed answers 405 regardless of who is asking.
func (u *HTTPHelper) MethodNotAllowed(c *gin.Context) {
	u.SendDetail(c, http.StatusMethodNotAllowed,
		fmt.Sprintf("Method \"%s\" not allowed.", c.Request.Method))
}

// PageNumber reads ?page=; absent means the first page.
func (u *HTTPHelper) PageNumber(c *gin.Context) (int, error) {
	raw := c.Query("page")
	if raw == "" {
		return firstPage, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < firstPage {
		return 0, &models.ErrorNotFound{Message: invalidPageText}
	}
	return page, nil
}

// Window returns offset and limit for a 1-based page number.
func (u *HTTPHelper) Window(page int) (offset, limit int) {
	if page < firstPage {
		page = firstPage
	}
	return (page - 1) * u.PageSize, u.PageSize
}

// get pagination URL
func (u *HTTPHelper) GetPagingUrl(c *gin.Context, page int) string {
	r := c.Request
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	query := url.Values{}
	for k, v := range r.URL.Query() {
		query[k] = v
	}
	if page <= firstPage {
		query.Del("page")
	} else {
		query.Set("page", strconv.Itoa(page))
	}

	pageURL := scheme + "://" + r.Host + r.URL.Path
	if encoded := query.Encode(); encoded != "" {
		pageURL += "?" + encoded
	}
	return pageURL
}

// GeneratePaging builds the list envelope. Pages past the last one are
// reported as not found, except the first page of an empty list.
func (u *HTTPHelper) GeneratePaging(c *gin.Context, page int, totalRecord int64, results interface{}) (models.Page, error) {
	if page < firstPage {
		page = firstPage
	}
	totalPages := int((totalRecord + int64(u.PageSize) - 1) / int64(u.PageSize))
	if page > firstPage && page > totalPages {
		return models.Page{}, &models.ErrorNotFound{Message: invalidPageText}
	}

	paging := models.Page{
		Count:   totalRecord,
		Results: results,
	}
	if page < totalPages {
		next := u.GetPagingUrl(c, page+1)
		paging.Next = &next
	}
	if page > firstPage {
		prev := u.GetPagingUrl(c, page-1)
		paging.Previous = &prev
	}
	return paging, nil
}
