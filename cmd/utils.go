package main

import (
	"github.com/siahsang/userdirectory/internal/validator"
)

func checkEmail(v *validator.Validator, email string) {
	v.CheckNotBlank(email, "email", "must be provided")
	v.CheckMaxLength(email, 254, "email", "must not be more than 254 characters long")
	v.CheckEmail(email, "email", "must be a valid email address")
}
