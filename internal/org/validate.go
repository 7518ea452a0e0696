package org

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"org-structure-service/internal/apperror"
)

const (
	maxFieldLength = 200
	maxEmailLength = 254
	minDateYear    = 0
	maxDateYear    = 9999
)

var validate = validator.New()

func validateRequired(value string, field string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return apperror.Newf(apperror.CodeValidation, "%s is required", field)
	}
	if utf8.RuneCountInString(value) > maxFieldLength {
		return apperror.Newf(apperror.CodeValidation, "%s length must be in range 1..%d", field, maxFieldLength)
	}
	return nil
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return apperror.New(apperror.CodeValidation, "email is required")
	}
	if len(email) > maxEmailLength {
		return apperror.Newf(apperror.CodeValidation, "email must be at most %d characters", maxEmailLength)
	}
	at := strings.LastIndex(email, "@")
	if at <= 0 || !strings.Contains(email[at+1:], ".") {
		return apperror.Newf(apperror.CodeValidation, "invalid email format: %q", email)
	}
	if err := validate.Var(email, "email"); err != nil {
		return apperror.Newf(apperror.CodeValidation, "invalid email format: %q", email)
	}
	return nil
}

func validateDate(value *time.Time, field string) error {
	if value == nil {
		return nil
	}
	if year := value.Year(); year < minDateYear || year > maxDateYear {
		return apperror.Newf(apperror.CodeValidation, "%s year must be in range %d..%d", field, minDateYear, maxDateYear)
	}
	if _, offset := value.Zone(); offset%60 != 0 {
		return apperror.Newf(apperror.CodeValidation, "%s must use a UTC offset of whole minutes", field)
	}
	return nil
}

func optionalPhone(phone *string) *string {
	if phone == nil || strings.TrimSpace(*phone) == "" {
		return nil
	}
	return optionalString(phone)
}

func optionalString(value *string) *string {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}
