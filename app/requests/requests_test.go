package requests

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonContext(t *testing.T, body string) *gin.Context {
	t.Helper()

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestValidateClaim(t *testing.T) {
	req, err := ValidateClaim(jsonContext(t, `{"day": 3}`))
	require.NoError(t, err)
	assert.Equal(t, 3, req.Day)
}

func TestValidateClaimOutOfRange(t *testing.T) {
	for _, body := range []string{`{"day": 0}`, `{"day": 8}`, `{"day": -1}`, `{}`} {
		_, err := ValidateClaim(jsonContext(t, body))
		assert.Error(t, err, body)
	}
}

func TestValidateClaimMalformedJSON(t *testing.T) {
	_, err := ValidateClaim(jsonContext(t, `{"day": "three"}`))
	assert.Error(t, err)
}

func TestValidateCreateProfile(t *testing.T) {
	req, err := ValidateCreateProfile(jsonContext(t, `{
		"email": "new@example.com",
		"name":  "New Member",
		"headline": "hello there"
	}`))
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", req.Email)
	assert.Equal(t, "New Member", req.Name)
}

func TestValidateCreateProfileRejectsBadEmail(t *testing.T) {
	_, err := ValidateCreateProfile(jsonContext(t, `{"email": "not-an-email", "name": "X Y"}`))
	require.Error(t, err)

	var verr ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestValidateCreateProfileRequiresName(t *testing.T) {
	_, err := ValidateCreateProfile(jsonContext(t, `{"email": "a@b.com"}`))
	assert.Error(t, err)
}
