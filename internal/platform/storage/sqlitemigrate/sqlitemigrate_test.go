package sqlitemigrate

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

const createItems = "-- +migrate Up\nCREATE TABLE items(id TEXT PRIMARY KEY);\n-- +migrate Down\nDROP TABLE items;"

func TestApplyFSRunsPendingInVersionOrder(t *testing.T) {
	db := openTestDB(t)

	migrations := fstest.MapFS{
		"010_index.sql":  &fstest.MapFile{Data: []byte("CREATE INDEX items_id_idx ON items(id);")},
		"002_create.sql": &fstest.MapFile{Data: []byte(createItems)},
		"README.md":      &fstest.MapFile{Data: []byte("not sql")},
	}
	applied, err := ApplyFS(context.Background(), db, migrations, "")
	if err != nil {
		t.Fatalf("ApplyFS() error = %v", err)
	}
	if want := []string{"002_create.sql", "010_index.sql"}; !reflect.DeepEqual(applied, want) {
		t.Fatalf("applied = %v, want %v", applied, want)
	}
	if !tableExists(t, db, "items") {
		t.Fatal("expected items table")
	}
	if got := queryInt64(t, db, "SELECT MAX(version) FROM schema_migrations"); got != 10 {
		t.Fatalf("max version = %d, want 10", got)
	}
}

func TestApplyFSSkipsAppliedVersions(t *testing.T) {
	db := openTestDB(t)

	migrations := fstest.MapFS{"001_create.sql": &fstest.MapFile{Data: []byte(createItems)}}
	if _, err := ApplyFS(context.Background(), db, migrations, ""); err != nil {
		t.Fatalf("first ApplyFS() error = %v", err)
	}
	applied, err := ApplyFS(context.Background(), db, migrations, "")
	if err != nil {
		t.Fatalf("second ApplyFS() error = %v", err)
	}
	if len(applied) != 0 {
		t.Fatalf("applied = %v, want none on replay", applied)
	}
	if got := queryInt64(t, db, "SELECT COUNT(*) FROM schema_migrations"); got != 1 {
		t.Fatalf("migration rows = %d, want 1", got)
	}
}

func TestApplyFSRejectsEditedMigration(t *testing.T) {
	db := openTestDB(t)

	original := fstest.MapFS{"001_create.sql": &fstest.MapFile{Data: []byte(createItems)}}
	if _, err := ApplyFS(context.Background(), db, original, ""); err != nil {
		t.Fatalf("ApplyFS() error = %v", err)
	}
	edited := fstest.MapFS{"001_create.sql": &fstest.MapFile{Data: []byte(createItems + "\n-- tweak")}}
	if _, err := ApplyFS(context.Background(), db, edited, ""); !errors.Is(err, ErrChecksumMismatch) {
		t.Fatalf("ApplyFS(edited) error = %v, want ErrChecksumMismatch", err)
	}
}

func TestApplyFSDoesNotRecordFailedMigration(t *testing.T) {
	db := openTestDB(t)

	bad := fstest.MapFS{"001_bad.sql": &fstest.MapFile{Data: []byte("-- +migrate Up\nCREAT table things(id INT);")}}
	if _, err := ApplyFS(context.Background(), db, bad, ""); err == nil {
		t.Fatal("expected bad migration to fail")
	}
	if got := queryInt64(t, db, "SELECT COUNT(*) FROM schema_migrations"); got != 0 {
		t.Fatalf("migration rows = %d, want 0 after failure", got)
	}

	good := fstest.MapFS{"001_bad.sql": &fstest.MapFile{Data: []byte("-- +migrate Up\nCREATE TABLE things(id INTEGER PRIMARY KEY);")}}
	if _, err := ApplyFS(context.Background(), db, good, ""); err != nil {
		t.Fatalf("apply fixed migration: %v", err)
	}
}

func TestLoadRejectsBadNames(t *testing.T) {
	t.Parallel()

	cases := map[string]fstest.MapFS{
		"no version": {"create.sql": &fstest.MapFile{Data: []byte("SELECT 1;")}},
		"duplicate": {
			"001_a.sql": &fstest.MapFile{Data: []byte("SELECT 1;")},
			"1_b.sql":   &fstest.MapFile{Data: []byte("SELECT 2;")},
		},
	}
	for name, fsys := range cases {
		if _, err := Load(fsys, ""); err == nil {
			t.Fatalf("%s: Load() error = nil, want error", name)
		}
	}
}

func TestLoadReadsFromRoot(t *testing.T) {
	t.Parallel()

	migrations, err := Load(fstest.MapFS{
		"sessions/001_sessions.sql": &fstest.MapFile{Data: []byte(createItems)},
	}, "sessions")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(migrations) != 1 || migrations[0].Version != 1 || migrations[0].Checksum == "" {
		t.Fatalf("migrations = %+v", migrations)
	}
}

func TestApplyHonorsCanceledContext(t *testing.T) {
	db := openTestDB(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ApplyFS(ctx, db, fstest.MapFS{"001_create.sql": &fstest.MapFile{Data: []byte(createItems)}}, ""); err == nil {
		t.Fatal("expected canceled context to stop migrations")
	}
}

func TestUpSection(t *testing.T) {
	t.Parallel()

	if got := UpSection(createItems); got != "\nCREATE TABLE items(id TEXT PRIMARY KEY);\n" {
		t.Fatalf("UpSection() = %q", got)
	}
	if got := UpSection("SELECT 1;"); got != "SELECT 1;" {
		t.Fatalf("UpSection() without markers = %q", got)
	}
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "migrate.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func queryInt64(t *testing.T, db *sql.DB, query string) int64 {
	t.Helper()
	var value int64
	if err := db.QueryRow(query).Scan(&value); err != nil {
		t.Fatalf("query %q: %v", query, err)
	}
	return value
}

func tableExists(t *testing.T, db *sql.DB, tableName string) bool {
	t.Helper()
	var name string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = ?", tableName).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		t.Fatalf("check table exists: %v", err)
	}
	return name == tableName
}
