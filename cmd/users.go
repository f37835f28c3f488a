package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/siahsang/userdirectory/internal/core"
	"github.com/siahsang/userdirectory/internal/data"
	"github.com/siahsang/userdirectory/internal/validator"
)

const (
	maxUsernameLength = 150
	minPasswordLength = 8
)

func (app *application) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		Password2 string `json:"password2"`
	}

	if err := app.readJSON(w, r, &input); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	user := &data.User{
		Username: strings.TrimSpace(input.Username),
		Email:    strings.TrimSpace(input.Email),
	}

	v := validator.New()

	// check username
	v.CheckNotBlank(user.Username, "username", "must be provided")
	v.CheckMaxLength(user.Username, maxUsernameLength, "username", "must not be more than 150 characters long")
	v.Check(validator.IsMatch(user.Username, validator.UsernameRX), "username", "may contain only letters, digits and @/./+/-/_ characters")

	checkEmail(v, user.Email)

	// check password
	v.CheckNotBlank(input.Password, "password", "must be provided")
	v.CheckMinLength(input.Password, minPasswordLength, "password", "must be at least 8 characters long")
	v.CheckNotBlank(input.Password2, "password2", "must be provided")
	v.Check(input.Password == input.Password2, "password2", "password fields didn't match")

	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	if err := user.SetPassword(input.Password); err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	err := app.users.CreateNewUser(r.Context(), user)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrDuplicateUsername):
			v.AddError("username", "a user with that username already exists")
			app.failedValidationResponse(w, r, v.Errors)
		case errors.Is(err, core.ErrDuplicateEmail):
			v.AddError("email", "a user with that email already exists")
			app.failedValidationResponse(w, r, v.Errors)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, user, nil); err != nil {
		app.logger.Error("Error writing response", "error", err.Error())
	}
}

func (app *application) getAllUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := app.users.GetAllUsers(r.Context())
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, users, nil); err != nil {
		app.logger.Error("Error writing response", "error", err.Error())
	}
}
