package models

import "time"

// BadanPublik is a public body targeted by email outreach.
type BadanPublik struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Category  string    `db:"category" json:"category"`
	Email     string    `db:"email" json:"email"`
	Website   string    `db:"website" json:"website,omitempty"`
	Address   string    `db:"address" json:"address,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type CreateBadanPublikInput struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Website  string `json:"website"`
	Address  string `json:"address"`
}

type UpdateBadanPublikInput struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Email    string `json:"email" binding:"omitempty,email"`
	Website  string `json:"website"`
	Address  string `json:"address"`
}
