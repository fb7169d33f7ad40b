package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "gamerverse/pkg/errors"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestErrorMapsAppError(t *testing.T) {
	c, rec := newContext()

	require.NoError(t, Error(c, apperrors.Conflict("order is already completed", nil)))

	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decode(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, apperrors.CodeConflict, body.Error.Code)
}

func TestErrorHidesUnknownErrors(t *testing.T) {
	c, rec := newContext()

	require.NoError(t, Error(c, errors.New("firestore: connection reset")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestErrorValidation(t *testing.T) {
	type contactForm struct {
		Email string `validate:"required,email"`
	}
	err := validator.New().Struct(contactForm{Email: "nope"})
	c, rec := newContext()

	require.NoError(t, Error(c, err))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "email must be a valid email address", body.Error.Message)
}

func TestPaginatedTotalPages(t *testing.T) {
	c, rec := newContext()

	require.NoError(t, Paginated(c, []string{"a", "b"}, 41, 1, 20))

	assert.Contains(t, rec.Body.String(), `"totalPages":3`)
}
