package models

import "time"

// BlogType groups blog posts, e.g. news, handbook, promotion.
type BlogType struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	NameEn    string    `json:"nameEn"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Blog represents a bilingual blog post. The Vietnamese fields are primary;
// the En variants may be empty when no translation exists.
type Blog struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	TitleEn    string    `json:"titleEn"`
	Slug       string    `json:"slug"`
	Summary    string    `json:"summary"`
	SummaryEn  string    `json:"summaryEn"`
	Content    string    `json:"content"`
	ContentEn  string    `json:"contentEn"`
	CoverURL   string    `json:"coverUrl"`
	BlogTypeID int64     `json:"blogTypeId"`
	AuthorID   int64     `json:"authorId"`
	Published  bool      `json:"published"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
