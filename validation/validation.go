// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package validation checks request structs against their validate tags and
// reports failures as a models.ValidationError keyed by json field name.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/danielhkuo/grocery-list/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Check validates v. It returns nil when v satisfies all of its tags.
func Check(v any) *models.ValidationError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return models.NewValidationError("input", err.Error())
	}

	verr := &models.ValidationError{}
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), message(fe))
	}
	return verr
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "url", "http_url":
		return "must be a valid URL"
	case "eqfield":
		return "passwords must match"
	}
	return "is invalid"
}
