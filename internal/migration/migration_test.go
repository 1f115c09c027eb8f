package migration

import (
	"database/sql"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", t.TempDir()+"/test.db")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestApplyAndValidate(t *testing.T) {
	fsys := fstest.MapFS{
		"001_init.sql":  {Data: []byte(`CREATE TABLE things (id TEXT PRIMARY KEY);`)},
		"002_names.sql": {Data: []byte(`ALTER TABLE things ADD COLUMN name TEXT;`)},
	}

	db := openTestDB(t)
	runner := NewRunner(db, fsys)

	applied, err := runner.Apply(nil)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}

	version, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 2 {
		t.Errorf("version = %d, want 2", version)
	}

	if err := runner.ValidateVersion(); err != nil {
		t.Errorf("ValidateVersion failed on up-to-date schema: %v", err)
	}

	// Re-running is a no-op.
	applied, err = runner.Apply(nil)
	if err != nil {
		t.Fatalf("second Apply failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("second Apply applied = %d, want 0", applied)
	}
}

func TestValidateVersionBehind(t *testing.T) {
	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte(`CREATE TABLE things (id TEXT PRIMARY KEY);`)},
	}

	db := openTestDB(t)
	runner := NewRunner(db, fsys)

	// Nothing applied yet: validation should report the schema is behind.
	if err := runner.ValidateVersion(); err == nil {
		t.Error("ValidateVersion should fail for an uninitialized database")
	}
}

func TestReadMigrationsRejectsBadNames(t *testing.T) {
	db := openTestDB(t)

	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{"missing version prefix", fstest.MapFS{"init.sql": {Data: []byte(`SELECT 1;`)}}},
		{"non-numeric version", fstest.MapFS{"abc_init.sql": {Data: []byte(`SELECT 1;`)}}},
		{
			"duplicate versions",
			fstest.MapFS{
				"001_a.sql": {Data: []byte(`SELECT 1;`)},
				"001_b.sql": {Data: []byte(`SELECT 1;`)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRunner(db, tt.fsys).ReadMigrations(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
