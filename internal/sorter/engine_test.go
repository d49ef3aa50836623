package sorter_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"sortd/internal/category"
	"sortd/internal/history"
	"sortd/internal/logging"
	"sortd/internal/sorter"
	"sortd/internal/testsupport"
)

func newEngine(t *testing.T, opts ...testsupport.ConfigOption) (*sorter.Engine, string) {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	engine := sorter.New(cfg, category.Default(), logging.NewNop(), nil)
	if err := engine.EnsureLayout(); err != nil {
		t.Fatalf("EnsureLayout: %v", err)
	}
	return engine, cfg.Paths.WatchDir
}

func TestFullScanSortsEverything(t *testing.T) {
	engine, watch := newEngine(t)

	testsupport.WriteFile(t, filepath.Join(watch, "photo.png"))
	testsupport.WriteFile(t, filepath.Join(watch, "notes.pdf"))
	testsupport.WriteFile(t, filepath.Join(watch, "model.stl"))
	testsupport.WriteFile(t, filepath.Join(watch, "weird.xyz"))
	testsupport.MkDir(t, filepath.Join(watch, "MyStuff"))

	report, err := engine.FullScan(context.Background())
	if err != nil {
		t.Fatalf("FullScan: %v", err)
	}

	checks := map[string]string{
		"photo.png": "Images",
		"notes.pdf": "PDFs",
		"model.stl": "STEP_Files",
		"weird.xyz": "Uncategorized",
	}
	for name, dest := range checks {
		if !testsupport.Exists(t, filepath.Join(watch, dest, name)) {
			t.Fatalf("%s missing from %s/", name, dest)
		}
		if testsupport.Exists(t, filepath.Join(watch, name)) {
			t.Fatalf("%s still at top level", name)
		}
	}
	if !testsupport.Exists(t, filepath.Join(watch, "Quarantine", "MyStuff")) {
		t.Fatal("MyStuff not quarantined")
	}

	if report.Placed != 3 || report.Uncategorized != 1 || report.Quarantined != 1 || report.Failed != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestFullScanIdempotent(t *testing.T) {
	engine, watch := newEngine(t)
	testsupport.WriteFile(t, filepath.Join(watch, "photo.png"))

	if _, err := engine.FullScan(context.Background()); err != nil {
		t.Fatalf("first FullScan: %v", err)
	}
	second, err := engine.FullScan(context.Background())
	if err != nil {
		t.Fatalf("second FullScan: %v", err)
	}
	if second.Moved() != 0 {
		t.Fatalf("second scan moved %d items", second.Moved())
	}
}

func TestIncrementalRequiresFullScan(t *testing.T) {
	engine, _ := newEngine(t)
	if _, err := engine.IncrementalScan(context.Background()); err == nil {
		t.Fatal("incremental scan before full scan should fail")
	}
}

func TestIncrementalPlacesNewFileWithoutOverwrite(t *testing.T) {
	engine, watch := newEngine(t)
	testsupport.WriteFile(t, filepath.Join(watch, "photo.png"))

	if _, err := engine.FullScan(context.Background()); err != nil {
		t.Fatalf("FullScan: %v", err)
	}

	// Same name reappears with different content: the original name was
	// freed when the first file moved out, so this is a new item and must
	// land beside the original under a conflict suffix.
	testsupport.WriteFile(t, filepath.Join(watch, "photo.png"))
	report, err := engine.IncrementalScan(context.Background())
	if err != nil {
		t.Fatalf("IncrementalScan: %v", err)
	}
	if report.Placed != 1 {
		t.Fatalf("expected one placement: %+v", report)
	}
	if !testsupport.Exists(t, filepath.Join(watch, "Images", "photo_1.png")) {
		t.Fatal("expected Images/photo_1.png")
	}
	if !testsupport.Exists(t, filepath.Join(watch, "Images", "photo.png")) {
		t.Fatal("original photo.png must survive")
	}
}

func TestIncrementalRunsArchiveReconciler(t *testing.T) {
	engine, watch := newEngine(t)
	if _, err := engine.FullScan(context.Background()); err != nil {
		t.Fatalf("FullScan: %v", err)
	}

	// An archive lands and gets filed, then its extracted directory shows up
	// beside it inside the archive bucket.
	testsupport.WriteFile(t, filepath.Join(watch, "backup.zip"))
	if _, err := engine.IncrementalScan(context.Background()); err != nil {
		t.Fatalf("IncrementalScan: %v", err)
	}
	if !testsupport.Exists(t, filepath.Join(watch, "Zip_Files", "backup.zip")) {
		t.Fatal("backup.zip not filed")
	}

	testsupport.MkDir(t, filepath.Join(watch, "Zip_Files", "backup"))
	report, err := engine.IncrementalScan(context.Background())
	if err != nil {
		t.Fatalf("IncrementalScan: %v", err)
	}
	if report.ArchivesRemoved != 1 {
		t.Fatalf("expected one archive removal: %+v", report)
	}
	if testsupport.Exists(t, filepath.Join(watch, "Zip_Files", "backup.zip")) {
		t.Fatal("redundant archive should be deleted")
	}
	if !testsupport.Exists(t, filepath.Join(watch, "Zip_Files", "backup")) {
		t.Fatal("extracted directory must survive")
	}
}

func TestQuarantineRespectsReservedAndIgnored(t *testing.T) {
	engine, watch := newEngine(t, testsupport.WithIgnoreDirs("Keep"))

	testsupport.MkDir(t, filepath.Join(watch, "Keep"))
	testsupport.MkDir(t, filepath.Join(watch, "Stray"))

	report, err := engine.FullScan(context.Background())
	if err != nil {
		t.Fatalf("FullScan: %v", err)
	}
	if report.Quarantined != 1 {
		t.Fatalf("expected exactly one quarantine: %+v", report)
	}
	if !testsupport.Exists(t, filepath.Join(watch, "Keep")) {
		t.Fatal("ignored folder moved")
	}
	for _, reserved := range category.Default().Directories() {
		if !testsupport.Exists(t, filepath.Join(watch, reserved)) {
			t.Fatalf("reserved directory %s moved", reserved)
		}
	}
	if !testsupport.Exists(t, filepath.Join(watch, "Quarantine", "Stray")) {
		t.Fatal("stray folder not quarantined")
	}
}

func TestQuarantineCollisionSuffix(t *testing.T) {
	engine, watch := newEngine(t)
	testsupport.MkDir(t, filepath.Join(watch, "Quarantine", "Projects"))
	testsupport.MkDir(t, filepath.Join(watch, "Projects"))

	if _, err := engine.FullScan(context.Background()); err != nil {
		t.Fatalf("FullScan: %v", err)
	}
	if !testsupport.Exists(t, filepath.Join(watch, "Quarantine", "Projects_1")) {
		t.Fatal("expected Projects_1 in quarantine")
	}
}

func TestPerItemFailureDoesNotAbortPass(t *testing.T) {
	engine, watch := newEngine(t)

	// Sabotage the PDFs bucket by replacing it with a regular file, so
	// placing a PDF fails while everything else keeps working. AAA.pdf
	// sorts before the blocker entry and hits it intact.
	pdfDir := filepath.Join(watch, "PDFs")
	if err := os.RemoveAll(pdfDir); err != nil {
		t.Fatal(err)
	}
	testsupport.WriteFile(t, pdfDir)

	testsupport.WriteFile(t, filepath.Join(watch, "AAA.pdf"))
	testsupport.WriteFile(t, filepath.Join(watch, "photo.png"))

	report, err := engine.FullScan(context.Background())
	if err != nil {
		t.Fatalf("pass should survive per-item failure: %v", err)
	}
	if report.Failed != 1 {
		t.Fatalf("expected one failure: %+v", report)
	}
	if !testsupport.Exists(t, filepath.Join(watch, "Images", "photo.png")) {
		t.Fatal("healthy item should still be placed")
	}
	if !testsupport.Exists(t, filepath.Join(watch, "AAA.pdf")) {
		t.Fatal("failed item should stay at top level")
	}
}

func TestPassAbortsWhenWatchDirVanishes(t *testing.T) {
	engine, watch := newEngine(t)
	if err := os.RemoveAll(watch); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.FullScan(context.Background()); err == nil {
		t.Fatal("expected enumeration failure")
	}
}

func TestEngineJournalsActions(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithHistory())
	journal, err := history.Open(cfg.HistoryPath())
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	defer journal.Close()

	engine := sorter.New(cfg, category.Default(), logging.NewNop(), journal)
	if err := engine.EnsureLayout(); err != nil {
		t.Fatalf("EnsureLayout: %v", err)
	}

	watch := cfg.Paths.WatchDir
	testsupport.WriteFile(t, filepath.Join(watch, "photo.png"))
	testsupport.MkDir(t, filepath.Join(watch, "Stray"))

	report, err := engine.FullScan(context.Background())
	if err != nil {
		t.Fatalf("FullScan: %v", err)
	}

	events, err := journal.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	for _, event := range events {
		if event.PassID != report.PassID {
			t.Fatalf("event pass %s != report pass %s", event.PassID, report.PassID)
		}
	}
}
