package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	cardNumberRegex = regexp.MustCompile(`^\d{4,16}$`)
	pinRegex        = regexp.MustCompile(`^\d{4,6}$`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// GenerateUUIDWithSuffix generates a new id for a record, prefixed with the
// short module name, e.g. "acc_8f14e45f-...".
func GenerateUUIDWithSuffix(module string) string {
	return fmt.Sprintf("%s_%s", module, uuid.New().String())
}

// NormalizeCardNumber strips all whitespace from a card number. The
// normalized form is the canonical identifier used for storage and lookup.
func NormalizeCardNumber(cardNumber string) string {
	return whitespaceRegex.ReplaceAllString(cardNumber, "")
}

// NormalizeEmail lowercases and trims an email address so uniqueness checks
// are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateSignup checks the shape of signup input. The card number must
// already be normalized. It performs no I/O; uniqueness is checked against
// the datasource by the account service.
func ValidateSignup(name, email, cardNumber, pin string) error {
	if strings.TrimSpace(name) == "" || email == "" || cardNumber == "" || pin == "" {
		return errors.New("all fields are required")
	}
	if !cardNumberRegex.MatchString(cardNumber) {
		return errors.New("card number must be 4-16 digits")
	}
	if !pinRegex.MatchString(pin) {
		return errors.New("PIN must be 4-6 digits")
	}
	return nil
}

// ValidateAmount checks that a deposit or withdrawal amount is strictly
// positive.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.Cmp(decimal.Zero) <= 0 {
		return errors.New("amount must be greater than zero")
	}
	return nil
}
