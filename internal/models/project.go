package models

import "time"

// Project represents a completed or ongoing construction/interior project
// shown in the public portfolio.
type Project struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	NameEn        string    `json:"nameEn"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	DescriptionEn string    `json:"descriptionEn"`
	Content       string    `json:"content"`
	ContentEn     string    `json:"contentEn"`
	CoverURL      string    `json:"coverUrl"`
	CategoryID    int64     `json:"categoryId"`
	Location      string    `json:"location"`
	AreaM2        float64   `json:"areaM2"`
	Year          int       `json:"year"`
	Published     bool      `json:"published"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
