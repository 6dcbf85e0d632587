package model

import "time"

// Article data model. Date is assigned once on insert and never
// rewritten by updates. Title and Body are nil when never supplied.
type Article struct {
	ID    int64     `json:"id"`
	Title *string   `json:"title"`
	Body  *string   `json:"body"`
	Date  time.Time `json:"date"`
}

// ArticlePatch carries the fields of a partial update. A nil field keeps
// the stored value.
type ArticlePatch struct {
	Title *string
	Body  *string
}
