package database

import "testing"

func TestRewritePlaceholdersToNumbered(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "no placeholders",
			query: "SELECT id FROM blogs",
			want:  "SELECT id FROM blogs",
		},
		{
			name:  "single placeholder",
			query: "SELECT id FROM blogs WHERE slug = ?",
			want:  "SELECT id FROM blogs WHERE slug = $1",
		},
		{
			name:  "multiple placeholders",
			query: "INSERT INTO contacts (full_name, email, phone) VALUES (?, ?, ?)",
			want:  "INSERT INTO contacts (full_name, email, phone) VALUES ($1, $2, $3)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rewritePlaceholdersToNumbered(tt.query)
			if got != tt.want {
				t.Errorf("rewritePlaceholdersToNumbered() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDialectDriverNames(t *testing.T) {
	tests := []struct {
		dialect Dialect
		want    string
	}{
		{SQLiteDialect{}, "sqlite3"},
		{PostgresDialect{}, "postgres"},
		{MySQLDialect{}, "mysql"},
	}

	for _, tt := range tests {
		if got := tt.dialect.DriverName(); got != tt.want {
			t.Errorf("DriverName() = %q, want %q", got, tt.want)
		}
	}
}

func TestPostgresRewrite(t *testing.T) {
	d := PostgresDialect{}
	got := d.RewriteQuery("UPDATE contacts SET status = ? WHERE id = ?")
	want := "UPDATE contacts SET status = $1 WHERE id = $2"
	if got != want {
		t.Errorf("RewriteQuery() = %q, want %q", got, want)
	}

	if d.SupportsLastInsertID() {
		t.Error("PostgresDialect should not report LastInsertId support")
	}
}
