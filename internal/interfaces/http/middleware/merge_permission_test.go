package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMergePermission(t *testing.T) {
	router := gin.New()
	router.Use(MergePermission("X-Merge-Permission"))
	router.POST("/merge", func(c *gin.Context) {
		c.String(http.StatusOK, strconv.FormatBool(MergeAllowed(c)))
	})

	tests := []struct {
		name   string
		value  string
		expect string
	}{
		{"true grants", "true", "true"},
		{"one grants", "1", "true"},
		{"false denies", "false", "false"},
		{"garbage denies", "yes please", "false"},
		{"missing header denies", "", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/merge", nil)
			if tt.value != "" {
				req.Header.Set("X-Merge-Permission", tt.value)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expect, w.Body.String())
		})
	}

	t.Run("without the middleware nothing is granted", func(t *testing.T) {
		bare := gin.New()
		bare.GET("/", func(c *gin.Context) {
			c.String(http.StatusOK, strconv.FormatBool(MergeAllowed(c)))
		})
		w := httptest.NewRecorder()
		bare.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "false", w.Body.String())
	})
}
