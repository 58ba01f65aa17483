package postgres

import "testing"

func TestSQLVerb(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"select", "SELECT id, name FROM cards WHERE id = $1", "SELECT"},
		{"insert", "INSERT INTO purchases (id) VALUES ($1)", "INSERT"},
		{"update lowercase", "update cards set name = $1 where id = $2", "UPDATE"},
		{"delete with leading whitespace", "\n\tDELETE FROM incomes WHERE id = $1", "DELETE"},
		{"single keyword", "COMMIT", "COMMIT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sqlVerb(tt.query); got != tt.want {
				t.Errorf("sqlVerb(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}
