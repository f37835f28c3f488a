package data

import (
	"time"

	"github.com/mdobak/go-xerrors"
	"golang.org/x/crypto/bcrypt"
)

const passwordCost = 12

type User struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	DateJoined time.Time `json:"date_joined"`
	IsActive   bool      `json:"is_active"`
	Password   []byte    `json:"-"`
}

func (user *User) SetPassword(plainTextPassword string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), passwordCost)
	if err != nil {
		return xerrors.New(err)
	}

	user.Password = hashedPassword
	return nil
}
