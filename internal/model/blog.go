package model

// Blog data model. UserID references User.ID but is not enforced, and
// may be nil when the author was not supplied.
type Blog struct {
	ID      int64   `json:"id"`
	UserID  *int64  `json:"user_id"`
	Content *string `json:"content"`
}

// BlogPatch carries the fields of a partial update. A nil field keeps
// the stored value.
type BlogPatch struct {
	UserID  *int64
	Content *string
}
