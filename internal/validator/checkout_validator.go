package validator

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"app/internal/domain/model"
	"app/internal/usecase"
)

var (
	ErrFirstNameRequired = errors.New("first name is required")
	ErrLastNameRequired  = errors.New("last name is required")
	ErrEmailRequired     = errors.New("email is required")
	ErrEmailInvalid      = errors.New("email is invalid")
	ErrPhoneRequired     = errors.New("phone number is required")
	ErrPhoneInvalid      = errors.New("please enter a valid Pakistani phone number")
	ErrAddressRequired   = errors.New("address is required")
	ErrCityRequired      = errors.New("city is required")
)

// パキスタンの電話番号（+92 / 0 の前置は任意、数字10桁）
var phoneRe = regexp.MustCompile(`^(\+92|0)?[0-9]{10}$`)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type checkoutValidator struct{}

// Usecaseは interface を依存注入
func NewCheckoutValidator() usecase.CheckoutValidator {
	return &checkoutValidator{}
}

// チェックアウトフォームの入力を検証。postalCode / notes は任意。
func (v *checkoutValidator) ValidateCustomerInfo(ctx context.Context, info model.CustomerInfo) error {
	if strings.TrimSpace(info.FirstName) == "" {
		return ErrFirstNameRequired
	}
	if strings.TrimSpace(info.LastName) == "" {
		return ErrLastNameRequired
	}

	email := strings.TrimSpace(info.Email)
	if email == "" {
		return ErrEmailRequired
	}
	if !emailRe.MatchString(email) {
		return ErrEmailInvalid
	}

	phone := strings.TrimSpace(info.Phone)
	if phone == "" {
		return ErrPhoneRequired
	}
	if !phoneRe.MatchString(strings.ReplaceAll(phone, " ", "")) {
		return ErrPhoneInvalid
	}

	if strings.TrimSpace(info.Address) == "" {
		return ErrAddressRequired
	}
	if strings.TrimSpace(info.City) == "" {
		return ErrCityRequired
	}

	return nil
}
