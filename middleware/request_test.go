package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blog-api/helper"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedactPassword(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		keep   []string
		hidden []string
	}{
		{
			name:   "sign in",
			body:   `{"email":"reader@example.com","password":"hunter22"}`,
			keep:   []string{`"email":"reader@example.com"`, `"password":"[redacted]"`},
			hidden: []string{"hunter22"},
		},
		{
			name:   "case insensitive key",
			body:   `{"Password":"hunter22","first_name":"Ann"}`,
			keep:   []string{`"first_name":"Ann"`},
			hidden: []string{"hunter22"},
		},
		{
			name: "no password",
			body: `{"title":"Hello","content":"world"}`,
			keep: []string{`{"title":"Hello","content":"world"}`},
		},
		{
			name:   "truncated body",
			body:   `{"email":"a@b.c","password":"hunter22`,
			keep:   []string{redacted},
			hidden: []string{"hunter22", "a@b.c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := redactPassword([]byte(tt.body))
			for _, s := range tt.keep {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.hidden {
				assert.NotContains(t, got, s)
			}
		})
	}
}

func TestRequestContext_CapturesRedactedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := helper.NewHTTPHelper()

	var captured any
	var bound map[string]string

	r := gin.New()
	r.Use(RequestContext(nil, time.Second, h))
	r.POST("/signin", func(c *gin.Context) {
		captured, _ = c.Get(helper.ContextBody)
		require.NoError(t, c.ShouldBindJSON(&bound))
		h.SendSuccess(c, "ok", nil)
	})

	req := httptest.NewRequest(http.MethodPost, "/signin",
		strings.NewReader(`{"email":"reader@example.com","password":"hunter22"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hunter22", bound["password"], "handler still reads the original body")

	var logged map[string]string
	require.NoError(t, json.Unmarshal([]byte(captured.(string)), &logged))
	assert.Equal(t, "reader@example.com", logged["email"])
	assert.Equal(t, redacted, logged["password"])
}
