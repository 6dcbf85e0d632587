package model

// User data model. PasswordHash is empty for users created without a
// password (they can never log in). Image is nil when never supplied.
type User struct {
	ID           int64   `json:"id"`
	Username     string  `json:"username"`
	PasswordHash string  `json:"-"`
	Image        *string `json:"image"`
}

// UserPatch carries the fields of a partial update. A nil field keeps
// the stored value.
type UserPatch struct {
	Username     *string
	PasswordHash *string
	Image        *string
}
