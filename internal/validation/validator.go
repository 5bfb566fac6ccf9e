// Package validation checks request payloads with go-playground/validator.
//
// A single validator instance is built on first use; it caches struct
// metadata and is safe for concurrent use. Field names in messages are the
// JSON names, so errors read the same as the payload the client sent.
//
// Custom tags:
//
//	notblank      string has at least one non-whitespace character
//	nowhitespace  string contains no whitespace at all
//	notfuture     "2006-01-02" date that is not after today (UTC)
//	releasedate   "2006-01-02" date not before 1895-12-28
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/filmorate/internal/apperror"
	"github.com/sakif/filmorate/internal/model"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// EarliestReleaseDate is the date of the first public film screening.
var EarliestReleaseDate = model.NewDate(1895, time.December, 28)

// now is replaced in tests.
var now = time.Now

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})

		mustRegister(v, "notblank", notBlank)
		mustRegister(v, "nowhitespace", noWhitespace)
		mustRegister(v, "notfuture", notFuture)
		mustRegister(v, "releasedate", releaseDate)

		validate = v
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: registering %q: %v", tag, err))
	}
}

// Struct validates s and returns an *apperror.AppError wrapping
// apperror.ErrValidation for the first failing field, or nil.
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperror.ValidationFailed("", err.Error())
	}

	fe := fieldErrs[0]
	return apperror.ValidationFailed(fe.Field(), translate(fe))
}

var messages = map[string]string{
	"required":     "%s is required",
	"email":        "%s must be a valid email address",
	"datetime":     "%s must be a date in YYYY-MM-DD format",
	"notblank":     "%s must not be blank",
	"nowhitespace": "%s must not contain whitespace",
	"notfuture":    "%s must not be in the future",
	"releasedate":  "%s must not be before " + EarliestReleaseDate.String(),
}

var messagesWithParam = map[string]string{
	"gt":  "%s must be greater than %s",
	"gte": "%s must be greater than or equal to %s",
	"max": "%s must be at most %s characters",
	"min": "%s must be at least %s characters",
}

func translate(fe validator.FieldError) string {
	if tmpl, ok := messages[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, fe.Field())
	}
	if tmpl, ok := messagesWithParam[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func noWhitespace(fl validator.FieldLevel) bool {
	return !strings.ContainsFunc(fl.Field().String(), unicode.IsSpace)
}

// notFuture and releaseDate pass unparseable input through; the datetime
// tag reports format errors.
func notFuture(fl validator.FieldLevel) bool {
	d, err := model.ParseDate(fl.Field().String())
	if err != nil {
		return true
	}
	y, m, day := now().UTC().Date()
	return !d.After(model.NewDate(y, m, day).Time)
}

func releaseDate(fl validator.FieldLevel) bool {
	d, err := model.ParseDate(fl.Field().String())
	if err != nil {
		return true
	}
	return !d.Before(EarliestReleaseDate.Time)
}
