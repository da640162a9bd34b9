package catalog

import (
	"os"
	"testing"

	"github.com/starford/raidho/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "raidho-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testFiles() []models.FileEntry {
	return []models.FileEntry{
		{Path: "documents/report.pdf", SizeBytes: 1024},
		{Path: "documents/invoice.pdf", SizeBytes: 768},
		{Path: "images/photo.jpg", SizeBytes: 2048},
		{Path: "code/main.go", SizeBytes: 512},
	}
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	for _, table := range []string{"categories", "drives", "files", "settings"} {
		var count int
		if err := db.conn.QueryRow(`SELECT count(*) FROM ` + table).Scan(&count); err != nil {
			t.Fatalf("%s table missing: %v", table, err)
		}
	}
}

func TestSaveInsertsHierarchy(t *testing.T) {
	db := testDB(t)

	inserted, err := db.Save("Work", "Laptop", 4096, testFiles())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if inserted != 4 {
		t.Errorf("inserted = %d, want 4", inserted)
	}

	count, err := db.CountFiles(Criteria{})
	if err != nil {
		t.Fatalf("CountFiles: %v", err)
	}
	if count != 4 {
		t.Errorf("count = %d, want 4", count)
	}

	items, err := db.SearchFiles(Criteria{}, 0, 10)
	if err != nil {
		t.Fatalf("SearchFiles: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("len(items) = %d, want 4", len(items))
	}
	first := items[0]
	if first.CategoryName != "Work" || first.DriveName != "Laptop" {
		t.Errorf("metadata = %s/%s, want Work/Laptop", first.CategoryName, first.DriveName)
	}
	if first.DriveAvailableSpace != 4096 {
		t.Errorf("available space = %d, want 4096", first.DriveAvailableSpace)
	}
	if first.DriveInsertionTime.IsZero() {
		t.Error("insertion time not set")
	}
}

func TestSaveReusesCategoryByName(t *testing.T) {
	db := testDB(t)
	if _, err := db.Save("Movies", "Disk1", 1, nil); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if _, err := db.Save("Movies", "Disk2", 1, nil); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	var categories int
	if err := db.conn.QueryRow(`SELECT count(*) FROM categories`).Scan(&categories); err != nil {
		t.Fatal(err)
	}
	if categories != 1 {
		t.Errorf("categories = %d, want 1", categories)
	}
	var drives int
	if err := db.conn.QueryRow(`SELECT count(*) FROM drives`).Scan(&drives); err != nil {
		t.Fatal(err)
	}
	if drives != 2 {
		t.Errorf("drives = %d, want one row per run, got %d", drives, drives)
	}
}

func TestSaveCreatesDriveRowPerRun(t *testing.T) {
	db := testDB(t)
	_, _ = db.Save("Work", "Laptop", 1, nil)
	_, _ = db.Save("Work", "Laptop", 1, nil)

	var drives int
	if err := db.conn.QueryRow(`SELECT count(*) FROM drives WHERE name = 'Laptop'`).Scan(&drives); err != nil {
		t.Fatal(err)
	}
	if drives != 2 {
		t.Errorf("drives = %d, want 2 (one per indexing run)", drives)
	}
}

func TestSaveRejectsInvalidPaths(t *testing.T) {
	db := testDB(t)

	if _, err := db.Save("Work", "Laptop", 0, []models.FileEntry{{Path: ""}}); err == nil {
		t.Error("empty path should be rejected")
	}
	if _, err := db.Save("Work", "Laptop", 0, []models.FileEntry{{Path: "/abs/path"}}); err == nil {
		t.Error("absolute path should be rejected")
	}
	// Nothing may be committed by a failed run.
	count, err := db.CountFiles(Criteria{})
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("count after failed saves = %d, want 0", count)
	}
	var drives int
	_ = db.conn.QueryRow(`SELECT count(*) FROM drives`).Scan(&drives)
	if drives != 0 {
		t.Errorf("drives after failed saves = %d, want 0", drives)
	}
}

func TestSpacePropagationAcrossCategories(t *testing.T) {
	db := testDB(t)
	_, _ = db.Save("Movies", "Disk1", 1000, nil)
	_, _ = db.Save("Music", "Disk1", 1000, nil)

	// A later run under yet another category updates every Disk1 row.
	if _, err := db.Save("Backups", "Disk1", 250, nil); err != nil {
		t.Fatalf("Save: %v", err)
	}

	rows, err := db.conn.Query(`SELECT available_space FROM drives WHERE name = 'Disk1'`)
	if err != nil {
		t.Fatal(err)
	}
	defer rows.Close()
	var seen int
	for rows.Next() {
		var space int64
		if err := rows.Scan(&space); err != nil {
			t.Fatal(err)
		}
		seen++
		if space != 250 {
			t.Errorf("row %d available_space = %d, want 250", seen, space)
		}
	}
	if seen != 3 {
		t.Errorf("rows = %d, want 3", seen)
	}
}

func TestSpacePropagationLeavesOtherDrivesAlone(t *testing.T) {
	db := testDB(t)
	_, _ = db.Save("Movies", "Disk1", 1000, nil)
	_, _ = db.Save("Movies", "Disk2", 2000, nil)
	_, _ = db.Save("Movies", "Disk1", 500, nil)

	var space int64
	if err := db.conn.QueryRow(`SELECT available_space FROM drives WHERE name = 'Disk2'`).Scan(&space); err != nil {
		t.Fatal(err)
	}
	if space != 2000 {
		t.Errorf("Disk2 available_space = %d, want 2000", space)
	}
}

func TestRemoveDuplicatesThenSaveIsIdempotent(t *testing.T) {
	db := testDB(t)
	files := testFiles()

	for i := 0; i < 2; i++ {
		if err := db.RemoveDuplicates("Work", "Laptop"); err != nil {
			t.Fatalf("RemoveDuplicates: %v", err)
		}
		if _, err := db.Save("Work", "Laptop", 100, files); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	count, err := db.CountFiles(Criteria{})
	if err != nil {
		t.Fatal(err)
	}
	if count != uint64(len(files)) {
		t.Errorf("count = %d, want %d (no duplicate accumulation)", count, len(files))
	}
}

func TestRemoveDuplicatesScopedToPair(t *testing.T) {
	db := testDB(t)
	_, _ = db.Save("Work", "Laptop", 0, testFiles())
	_, _ = db.Save("Work", "Desktop", 0, testFiles())
	_, _ = db.Save("Home", "Laptop", 0, testFiles())

	if err := db.RemoveDuplicates("Work", "Laptop"); err != nil {
		t.Fatalf("RemoveDuplicates: %v", err)
	}

	count, err := db.CountFiles(Criteria{})
	if err != nil {
		t.Fatal(err)
	}
	// Work/Desktop and Home/Laptop must survive.
	if count != 8 {
		t.Errorf("count = %d, want 8", count)
	}
}

func TestClampConversions(t *testing.T) {
	if got := clampToInt64(1 << 63); got != 1<<63-1 {
		t.Errorf("clampToInt64 overflow = %d", got)
	}
	if got := clampToInt64(42); got != 42 {
		t.Errorf("clampToInt64(42) = %d", got)
	}
	if got := clampToUint64(-1); got != 0 {
		t.Errorf("clampToUint64(-1) = %d", got)
	}
}
