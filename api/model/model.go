package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Only presence is checked at the boundary; digit formats, normalization
// and amount positivity are domain concerns enforced by the services.

func (s *Signup) ValidateSignup() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Name, validation.Required),
		validation.Field(&s.Email, validation.Required),
		validation.Field(&s.CardNumber, validation.Required),
		validation.Field(&s.PIN, validation.Required),
	)
}

func (l *Login) ValidateLogin() error {
	return validation.ValidateStruct(l,
		validation.Field(&l.CardNumber, validation.Required),
		validation.Field(&l.PIN, validation.Required),
	)
}

func (t *TransactionRequest) ValidateTransaction() error {
	return validation.ValidateStruct(t,
		validation.Field(&t.UserID, validation.Required),
		validation.Field(&t.Amount, validation.Required),
	)
}
