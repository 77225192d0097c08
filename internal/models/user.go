package models

// User is the locally stored session user object
type User struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsLoggedIn bool   `json:"isLoggedIn"`
}
