package sqlitemigrate

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return sqlDB
}

func TestApplyRunsMigrationsInOrder(t *testing.T) {
	sqlDB := openTestDB(t)
	migrations := fstest.MapFS{
		"0002_add_column.sql": {Data: []byte("-- +migrate Up\nALTER TABLE things ADD COLUMN note TEXT;\n-- +migrate Down\n")},
		"0001_init.sql":       {Data: []byte("-- +migrate Up\nCREATE TABLE things (id INTEGER PRIMARY KEY);\n-- +migrate Down\nDROP TABLE things;\n")},
	}

	if err := Apply(sqlDB, migrations); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if _, err := sqlDB.Exec("INSERT INTO things (id, note) VALUES (1, 'ok')"); err != nil {
		t.Fatalf("schema incomplete after migrations: %v", err)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	sqlDB := openTestDB(t)
	migrations := fstest.MapFS{
		"0001_init.sql": {Data: []byte("-- +migrate Up\nCREATE TABLE things (id INTEGER PRIMARY KEY);\n")},
	}

	if err := Apply(sqlDB, migrations); err != nil {
		t.Fatalf("first Apply() error = %v", err)
	}
	if err := Apply(sqlDB, migrations); err != nil {
		t.Fatalf("second Apply() error = %v", err)
	}

	var count int
	if err := sqlDB.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if count != 1 {
		t.Errorf("schema_migrations rows = %d, want 1", count)
	}
}

func TestApplyNilDB(t *testing.T) {
	if err := Apply(nil, fstest.MapFS{}); err == nil {
		t.Error("Apply(nil) should fail")
	}
}

func TestExtractUpMigration(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "up and down",
			content: "-- +migrate Up\nCREATE TABLE a (x);\n-- +migrate Down\nDROP TABLE a;\n",
			want:    "\nCREATE TABLE a (x);\n",
		},
		{
			name:    "no markers",
			content: "CREATE TABLE a (x);",
			want:    "CREATE TABLE a (x);",
		},
		{
			name:    "up only",
			content: "-- +migrate Up\nCREATE TABLE a (x);",
			want:    "\nCREATE TABLE a (x);",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractUpMigration(tt.content); got != tt.want {
				t.Errorf("ExtractUpMigration() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsAlreadyExistsError(t *testing.T) {
	if !IsAlreadyExistsError(errors.New("table things already exists")) {
		t.Error("expected already-exists detection")
	}
	if IsAlreadyExistsError(errors.New("syntax error")) {
		t.Error("unexpected already-exists detection")
	}
}
