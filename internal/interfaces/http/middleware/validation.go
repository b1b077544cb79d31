package middleware

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/erp/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator names fields after their json or form key and registers
// the notblank tag used on assignee labels
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(fieldName)
	_ = v.RegisterValidation("notblank", notBlank)
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return ""
}

// notBlank rejects labels that trim to nothing; "required" accepts "  "
func notBlank(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(fl.Field().String()) != ""
}

// BindingFailure is the response for a request that could not be bound
type BindingFailure struct {
	Status   int
	Response dto.Response
}

// ClassifyBindingError maps a ShouldBind error to its response. Merge bodies
// cut off by BodyLimit answer 413; everything else is a 400 validation error,
// with per-field details when the validator produced them.
func ClassifyBindingError(err error, requestID string) BindingFailure {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return BindingFailure{
			Status: http.StatusRequestEntityTooLarge,
			Response: dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRequestTooLarge,
				fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit),
				requestID,
			),
		}
	}

	message := "Request validation failed"
	details := ValidationDetails(err)
	switch {
	case details != nil:
	case errors.Is(err, io.EOF):
		message = "Request body is empty"
	default:
		message = "Malformed request: " + err.Error()
	}
	return BindingFailure{
		Status:   http.StatusBadRequest,
		Response: dto.NewValidationErrorResponse(message, requestID, details),
	}
}

// HandleValidationError answers a rejected binding
func HandleValidationError(c *gin.Context, err error) {
	failure := ClassifyBindingError(err, GetRequestID(c))
	c.JSON(failure.Status, failure.Response)
}

// ValidationDetails lists the rejected fields, or nil when err is not a
// validator error
func ValidationDetails(err error) []dto.ValidationDetail {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil
	}

	details := make([]dto.ValidationDetail, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		details = append(details, dto.ValidationDetail{Field: e.Field(), Message: fieldMessage(e)})
	}
	return details
}

// fieldMessages are keyed by validator tag; %s is the tag parameter
var fieldMessages = map[string]string{
	"required": "This field is required",
	"notblank": "Must not be blank",
	"oneof":    "Must be one of: %s",
	"len":      "Must be exactly %s characters",
	"gte":      "Must be greater than or equal to %s",
	"lte":      "Must be less than or equal to %s",
	"gt":       "Must be greater than %s",
	"lt":       "Must be less than %s",
	"numeric":  "Must be numeric",
}

func fieldMessage(e validator.FieldError) string {
	// min and max bound the length of labels and the value of ids and periods
	if e.Tag() == "min" || e.Tag() == "max" {
		bound := "least"
		if e.Tag() == "max" {
			bound = "most"
		}
		if e.Kind() == reflect.String {
			return fmt.Sprintf("Must be at %s %s characters", bound, e.Param())
		}
		return fmt.Sprintf("Must be at %s %s", bound, e.Param())
	}

	tmpl, ok := fieldMessages[e.Tag()]
	if !ok {
		return "Invalid value"
	}
	if strings.Contains(tmpl, "%s") {
		return fmt.Sprintf(tmpl, e.Param())
	}
	return tmpl
}
