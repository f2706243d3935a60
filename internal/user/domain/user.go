package domain

import "time"

type User struct {
	ID        string
	Email     string
	Name      string
	Address   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ProfileUpdate struct {
	Name    *string
	Address *string
	Phone   *string
}
