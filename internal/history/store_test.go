package history

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	events := []Event{
		{PassID: "p1", Action: ActionPlaced, Name: "photo.png", Destination: "Images/photo.png", Category: "Images"},
		{PassID: "p1", Action: ActionQuarantined, Name: "MyStuff", Destination: "Quarantine/MyStuff"},
		{PassID: "p2", Action: ActionArchiveRemoved, Name: "backup.zip"},
	}
	for _, event := range events {
		if err := store.Record(ctx, event); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	got, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	// Newest first.
	if got[0].Action != ActionArchiveRemoved || got[0].Name != "backup.zip" {
		t.Fatalf("unexpected first event: %+v", got[0])
	}
	if got[0].CreatedAt.IsZero() {
		t.Fatal("created_at not round-tripped")
	}
	if got[2].Category != "Images" {
		t.Fatalf("category lost: %+v", got[2])
	}
}

func TestRecentLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := store.Record(ctx, Event{PassID: "p", Action: ActionPlaced, Name: "f"}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	got, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
}

func TestCountByAction(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := store.Record(ctx, Event{PassID: "p", Action: ActionPlaced, Name: "f"}); err != nil {
			t.Fatal(err)
		}
	}
	if err := store.Record(ctx, Event{PassID: "p", Action: ActionFailed, Name: "g", Detail: "permission_denied"}); err != nil {
		t.Fatal(err)
	}

	counts, err := store.CountByAction(ctx)
	if err != nil {
		t.Fatalf("CountByAction: %v", err)
	}
	if counts[ActionPlaced] != 3 || counts[ActionFailed] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestReopenKeepsSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.Record(context.Background(), Event{PassID: "p", Action: ActionPlaced, Name: "f"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Recent(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 event after reopen, got %d", len(got))
	}
}

func TestNilStoreRecordIsNoop(t *testing.T) {
	var store *Store
	if err := store.Record(context.Background(), Event{Action: ActionPlaced}); err != nil {
		t.Fatalf("nil store Record should be a no-op, got %v", err)
	}
}
