package models

import "time"

// Category groups projects, e.g. apartment interiors, townhouses, offices.
type Category struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	NameEn        string    `json:"nameEn"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	DescriptionEn string    `json:"descriptionEn"`
	CoverURL      string    `json:"coverUrl"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
