package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Admin        bool      `json:"admin"`
	SuperAdmin   bool      `json:"superAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u User) AsAuthor() *Author {
	return &Author{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}
