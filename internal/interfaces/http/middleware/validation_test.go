package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/erp/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type periodInput struct {
	Year  *int   `form:"year" binding:"omitempty,min=1"`
	Month *int   `form:"month" binding:"omitempty,min=1,max=12"`
	Kind  string `form:"kind" binding:"omitempty,oneof=session contract daily_report"`
}

type renameInput struct {
	OldName string `json:"old_name" binding:"required,notblank,max=10"`
	NewName string `json:"new_name" binding:"required,notblank,max=10"`
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp
}

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	t.Run("notblank rejects whitespace labels", func(t *testing.T) {
		err := v.Struct(renameInput{OldName: "  ", NewName: "Sara"})
		require.Error(t, err)
		details := ValidationDetails(err)
		require.Len(t, details, 1)
		assert.Equal(t, dto.ValidationDetail{Field: "old_name", Message: "Must not be blank"}, details[0])
	})

	t.Run("padded labels pass", func(t *testing.T) {
		assert.NoError(t, v.Struct(renameInput{OldName: " sara ", NewName: "Sara"}))
	})
}

func TestHandleValidationError_Query(t *testing.T) {
	SetupValidator()

	router := gin.New()
	router.Use(RequestID())
	router.GET("/reports/payroll", func(c *gin.Context) {
		var in periodInput
		if err := c.ShouldBindQuery(&in); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(in))
	})

	t.Run("reports each rejected field by its form name", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/reports/payroll?year=0&month=13&kind=invoice", nil)
		req.Header.Set(RequestIDHeader, "req-42")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Equal(t, "Request validation failed", resp.Error.Message)
		assert.Equal(t, "req-42", resp.Error.RequestID)

		messages := map[string]string{}
		for _, d := range resp.Error.Details {
			messages[d.Field] = d.Message
		}
		assert.Equal(t, map[string]string{
			"year":  "Must be at least 1",
			"month": "Must be at most 12",
			"kind":  "Must be one of: session contract daily_report",
		}, messages)
	})

	t.Run("period fields are optional", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/payroll?year=2024", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unparsable numbers are malformed", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/payroll?year=last", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Empty(t, resp.Error.Details)
		assert.True(t, strings.HasPrefix(resp.Error.Message, "Malformed request: "))
	})
}

func TestHandleValidationError_Body(t *testing.T) {
	SetupValidator()

	router := gin.New()
	router.POST("/assignees/merge", BodyLimit(64), func(c *gin.Context) {
		var in renameInput
		if err := c.ShouldBindJSON(&in); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	post := func(body string, contentLength int64) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/assignees/merge", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.ContentLength = contentLength
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantCode    string
		wantMessage string
		wantFields  []string
	}{
		{
			name:        "missing label",
			body:        `{"old_name":"Sara"}`,
			wantStatus:  http.StatusBadRequest,
			wantCode:    dto.ErrCodeValidation,
			wantMessage: "Request validation failed",
			wantFields:  []string{"new_name"},
		},
		{
			name:        "labels over the length bound",
			body:        `{"old_name":"Sara","new_name":"Sarah Connor"}`,
			wantStatus:  http.StatusBadRequest,
			wantCode:    dto.ErrCodeValidation,
			wantMessage: "Request validation failed",
			wantFields:  []string{"new_name"},
		},
		{
			name:        "empty body",
			body:        "",
			wantStatus:  http.StatusBadRequest,
			wantCode:    dto.ErrCodeValidation,
			wantMessage: "Request body is empty",
		},
		{
			name:        "streamed body past the limit",
			body:        `{"old_name":"` + strings.Repeat("x", 100) + `","new_name":"Sara"}`,
			wantStatus:  http.StatusRequestEntityTooLarge,
			wantCode:    dto.ErrCodeRequestTooLarge,
			wantMessage: "Request body exceeds 64 bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(tt.body, -1)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, tt.wantMessage, resp.Error.Message)

			var fields []string
			for _, d := range resp.Error.Details {
				fields = append(fields, d.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}

	t.Run("broken json has no field details", func(t *testing.T) {
		w := post(`{"old_name":`, -1)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Empty(t, resp.Error.Details)
		assert.True(t, strings.HasPrefix(resp.Error.Message, "Malformed request: "))
	})
}

func TestClassifyBindingError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"body too large", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge},
		{"wrapped body too large", errors.Join(errors.New("decode"), &http.MaxBytesError{Limit: 10}), http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge},
		{"eof", io.EOF, http.StatusBadRequest, dto.ErrCodeValidation},
		{"other", errors.New("boom"), http.StatusBadRequest, dto.ErrCodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failure := ClassifyBindingError(tt.err, "req-1")
			assert.Equal(t, tt.wantStatus, failure.Status)
			assert.Equal(t, tt.wantCode, failure.Response.Error.Code)
			assert.Equal(t, "req-1", failure.Response.Error.RequestID)
		})
	}
}

func TestValidationDetails(t *testing.T) {
	assert.Nil(t, ValidationDetails(errors.New("boom")))
}

func TestFieldMessage(t *testing.T) {
	type sample struct {
		Required string `validate:"required"`
		Min      string `validate:"min=5"`
		Max      string `validate:"max=3"`
		MinID    int64  `validate:"min=1"`
		MaxMonth int    `validate:"max=12"`
		Len      string `validate:"len=5"`
		OneOf    string `validate:"oneof=a b c"`
		GTE      int    `validate:"gte=10"`
		LT       int    `validate:"lt=-1"`
		Email    string `validate:"email"`
	}

	v := validator.New()
	err := v.Struct(sample{Max: "too long", MaxMonth: 13, Len: "ab", OneOf: "d", Email: "nope"})
	require.Error(t, err)

	got := map[string]string{}
	for _, e := range err.(validator.ValidationErrors) {
		got[e.Field()] = fieldMessage(e)
	}

	tests := []struct {
		field    string
		expected string
	}{
		{"Required", "This field is required"},
		{"Min", "Must be at least 5 characters"},
		{"Max", "Must be at most 3 characters"},
		{"MinID", "Must be at least 1"},
		{"MaxMonth", "Must be at most 12"},
		{"Len", "Must be exactly 5 characters"},
		{"OneOf", "Must be one of: a b c"},
		{"GTE", "Must be greater than or equal to 10"},
		{"LT", "Must be less than -1"},
		{"Email", "Invalid value"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.expected, got[tt.field])
		})
	}
}
