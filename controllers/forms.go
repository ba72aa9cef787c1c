package controllers

import (
	stderrors "errors"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("strongpassword", strongPassword)
	_ = v.RegisterValidation("digits", digitsOnly)
	return v
}

// strongPassword requires an upper case letter, a lower case letter and a digit.
func strongPassword(fl validator.FieldLevel) bool {
	var upper, lower, digit bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

func digitsOnly(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

type LoginForm struct {
	Email       string `form:"email" json:"email" validate:"required,email"`
	Password    string `form:"password" json:"password" validate:"required"`
	CallbackURL string `form:"callbackUrl" json:"callbackUrl"`
}

type RegisterForm struct {
	Name       string `form:"name" json:"name" validate:"required"`
	Email      string `form:"email" json:"email" validate:"required,email"`
	Password   string `form:"password" json:"password" validate:"required"`
	RePassword string `form:"rePassword" json:"rePassword" validate:"required,eqfield=Password"`
	Phone      string `form:"phone" json:"phone" validate:"required"`
}

type ResetEmailForm struct {
	Email string `form:"email" json:"email" validate:"required,email,max=100"`
}

type ResetCodeForm struct {
	ResetCode string `form:"resetCode" json:"resetCode" validate:"required,len=6,digits"`
}

type ResetPasswordForm struct {
	Password string `form:"password" json:"password" validate:"required,min=8,max=50,strongpassword"`
}

type ProfileForm struct {
	Name  string `form:"name" json:"name" validate:"omitempty,min=3,max=50"`
	Email string `form:"email" json:"email" validate:"omitempty,email"`
}

type ChangePasswordForm struct {
	CurrentPassword string `form:"currentPassword" json:"currentPassword" validate:"required"`
	Password        string `form:"password" json:"password" validate:"required"`
	RePassword      string `form:"rePassword" json:"rePassword" validate:"required"`
}

type AddressForm struct {
	Name    string `form:"name" json:"name" validate:"required,max=50"`
	Details string `form:"details" json:"details" validate:"required,max=200"`
	Phone   string `form:"phone" json:"phone" validate:"required"`
	City    string `form:"city" json:"city" validate:"required,max=50"`
}

type ShippingForm struct {
	AddressID string `form:"address_id" json:"addressId"`
	Details   string `form:"details" json:"details"`
	Phone     string `form:"phone" json:"phone"`
	City      string `form:"city" json:"city"`
}

type QuantityForm struct {
	Count int `form:"count" json:"count"`
}

var fieldMessages = map[string]string{
	"email.required":          "Email is required",
	"email.email":             "Please enter a valid email address",
	"email.max":               "Email is too long",
	"password.required":       "Password is required",
	"password.min":            "Password must be at least 8 characters",
	"password.max":            "Password is too long",
	"password.strongpassword": "Password must contain at least one uppercase letter, one lowercase letter, and one number",
	"resetCode.required":      "Reset code is required",
	"resetCode.len":           "Reset code must be exactly 6 characters",
	"resetCode.digits":        "Reset code must contain only numbers",
	"rePassword.required":     "Please confirm your password",
	"rePassword.eqfield":      "Passwords do not match",
	"name.required":           "Name is required",
	"name.min":                "Name must be at least 3 characters",
	"phone.required":          "Phone is required",
	"city.required":           "City is required",
	"details.required":        "Address details are required",
}

// validationMessages turns validator errors into user-facing sentences, one per field.
func validationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return []string{"Invalid input"}
	}
	out := make([]string, 0, len(verrs))
	seen := map[string]bool{}
	for _, fe := range verrs {
		if seen[fe.Field()] {
			continue
		}
		seen[fe.Field()] = true
		if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
			out = append(out, msg)
			continue
		}
		out = append(out, fe.Field()+" is invalid")
	}
	return out
}
