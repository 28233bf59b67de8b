package validator

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  string   `json:"name" binding:"notblank" msg:"Name is required"`
	Date  string   `json:"date" binding:"required,isodate" msg:"Valid date is required"`
	Email string   `json:"email" binding:"omitempty,email"`
	Count *int     `json:"count" msg:"Count must be a number"`
	Tags  []string `json:"tags"`
}

func bind(t *testing.T, body string) (sampleRequest, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	Register()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req sampleRequest
	err := c.ShouldBindJSON(&req)
	return req, err
}

func TestMessagesUseMsgTags(t *testing.T) {
	req, err := bind(t, `{"name":"   ","date":"2025-02-30"}`)
	require.Error(t, err)

	msgs := Messages(err, &req)
	assert.ElementsMatch(t, []string{"Name is required", "Valid date is required"}, msgs)
}

func TestMessagesFallBackToTagText(t *testing.T) {
	req, err := bind(t, `{"name":"Jane","date":"2025-02-03","email":"nope"}`)
	require.Error(t, err)

	assert.Equal(t, []string{"email must be a valid email"}, Messages(err, &req))
}

func TestMessagesForTypeErrors(t *testing.T) {
	req, err := bind(t, `{"name":"Jane","date":"2025-02-03","count":"many"}`)
	require.Error(t, err)

	assert.Equal(t, []string{"Count must be a number"}, Messages(err, &req))
}

func TestMessagesForSyntaxErrors(t *testing.T) {
	req, err := bind(t, `{"name":`)
	require.Error(t, err)

	assert.Equal(t, []string{"Invalid request body"}, Messages(err, &req))
}

func TestValidRequestBinds(t *testing.T) {
	req, err := bind(t, `{"name":"Jane","date":"2025-02-03","email":""}`)
	require.NoError(t, err)
	assert.Equal(t, "Jane", req.Name)
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Jane@Example.COM ", "jane@example.com"},
		{"jane.doe+nails@gmail.com", "janedoe@gmail.com"},
		{"Jane.Doe@GoogleMail.com", "janedoe@gmail.com"},
		{"jane+x@outlook.com", "jane@outlook.com"},
		{"jane.doe+x@example.com", "jane.doe+x@example.com"},
		{"not-an-email", "not-an-email"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeEmail(tt.in))
		})
	}
}
