package validator_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	"app/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func valid() model.CustomerInfo {
	return model.CustomerInfo{
		FirstName: "Ayesha",
		LastName:  "Khan",
		Email:     "ayesha@example.com",
		Phone:     "03001234567",
		Address:   "House 12, Street 4",
		City:      "Karachi",
	}
}

func TestValidateCustomerInfo_OK(t *testing.T) {
	v := validator.NewCheckoutValidator()
	require.NoError(t, v.ValidateCustomerInfo(context.Background(), valid()))
}

func TestValidateCustomerInfo_RequiredFields(t *testing.T) {
	v := validator.NewCheckoutValidator()
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*model.CustomerInfo)
		want   error
	}{
		{"first name", func(i *model.CustomerInfo) { i.FirstName = "  " }, validator.ErrFirstNameRequired},
		{"last name", func(i *model.CustomerInfo) { i.LastName = "" }, validator.ErrLastNameRequired},
		{"email", func(i *model.CustomerInfo) { i.Email = "" }, validator.ErrEmailRequired},
		{"phone", func(i *model.CustomerInfo) { i.Phone = "" }, validator.ErrPhoneRequired},
		{"address", func(i *model.CustomerInfo) { i.Address = "" }, validator.ErrAddressRequired},
		{"city", func(i *model.CustomerInfo) { i.City = "" }, validator.ErrCityRequired},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			info := valid()
			c.mutate(&info)
			assert.ErrorIs(t, v.ValidateCustomerInfo(ctx, info), c.want)
		})
	}
}

func TestValidateCustomerInfo_Email(t *testing.T) {
	v := validator.NewCheckoutValidator()
	ctx := context.Background()

	for _, bad := range []string{"plain", "a@b", "a b@c.com", "@c.com"} {
		info := valid()
		info.Email = bad
		assert.ErrorIs(t, v.ValidateCustomerInfo(ctx, info), validator.ErrEmailInvalid, bad)
	}
}

func TestValidateCustomerInfo_Phone(t *testing.T) {
	v := validator.NewCheckoutValidator()
	ctx := context.Background()

	for _, ok := range []string{"03001234567", "+923001234567", "3001234567", "0300 123 4567"} {
		info := valid()
		info.Phone = ok
		assert.NoError(t, v.ValidateCustomerInfo(ctx, info), ok)
	}

	for _, bad := range []string{"12345", "abcdefghij", "+4423001234567", "030012345678"} {
		info := valid()
		info.Phone = bad
		assert.ErrorIs(t, v.ValidateCustomerInfo(ctx, info), validator.ErrPhoneInvalid, bad)
	}
}

func TestValidateCustomerInfo_OptionalFields(t *testing.T) {
	v := validator.NewCheckoutValidator()

	info := valid()
	info.PostalCode = ""
	info.Notes = ""
	assert.NoError(t, v.ValidateCustomerInfo(context.Background(), info))
}
