package repository

import (
	"fmt"

	"truongphat/internal/database"
)

// StatsRepository aggregates entity counts for the dashboard overview.
type StatsRepository struct {
	db *database.DB
}

// NewStatsRepository creates a new stats repository.
func NewStatsRepository(db *database.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// CountRows counts rows in one of the known tables. The table name is
// checked against an allow-list since it is interpolated into the query.
func (r *StatsRepository) CountRows(table string) (int64, error) {
	switch table {
	case "staffs", "blogs", "blog_types", "categories", "projects", "contacts":
	default:
		return 0, fmt.Errorf("unknown table: %s", table)
	}

	var count int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return count, nil
}
