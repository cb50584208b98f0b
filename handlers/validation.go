package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// mealDateLayouts are tried in order. Layouts without a zone are read as UTC.
var mealDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var registerOnce sync.Once

// ParseMealDate parses a client supplied meal date and normalizes it to UTC.
func ParseMealDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range mealDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format: %q", s)
}

// RegisterValidators hooks the custom binding rules into gin's validator.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("mealdate", func(fl validator.FieldLevel) bool {
			_, err := ParseMealDate(fl.Field().String())
			return err == nil
		})
	})
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "mealdate":
		return "Invalid date format"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "failed on " + fe.Tag()
	}
}

// respondBindError writes a 400 for anything ShouldBindJSON rejected.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	details := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, fieldError{Field: fe.Field(), Message: describe(fe)})
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": details})
}
