package models

import "time"

// User is the profile entity owned by the user service.
type User struct {
	ID        string     `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	IsActive  bool       `json:"isActive"`
	IsDeleted bool       `json:"isDeleted"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// UserPage is the payload of get_all_users.
type UserPage struct {
	Users []*User `json:"users"`
	Total int     `json:"total"`
}
