package store

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func tempDoc(t *testing.T) *Document[[]FAQ] {
	t.Helper()
	return NewDocument(filepath.Join(t.TempDir(), "faq.json"), DefaultFAQ)
}

func TestLoadCreatesDefault(t *testing.T) {

	doc := tempDoc(t)
	entries, err := doc.Load()
	if err != nil {
		t.Fatalf("Load() on a missing file: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("default should be empty, got %d entries", len(entries))
	}
	if _, err := os.Stat(doc.Filename()); err != nil {
		t.Fatalf("Load() should have created the file: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {

	doc := tempDoc(t)
	want := []FAQ{{Question: "Q1", Answer: "A1"}, {Question: "Q2", Answer: "A2"}}
	if err := doc.Save(want); err != nil {
		t.Fatalf("Save(): %v", err)
	}
	got, err := doc.Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("round trip mismatch: %v", got)
	}
}

func TestSaveOfLoadIsByteIdentical(t *testing.T) {

	doc := tempDoc(t)
	if err := doc.Save([]FAQ{{Question: "Q", Answer: "A"}}); err != nil {
		t.Fatalf("Save(): %v", err)
	}
	before, err := os.ReadFile(doc.Filename())
	if err != nil {
		t.Fatalf("ReadFile(): %v", err)
	}

	value, err := doc.Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if err := doc.Save(value); err != nil {
		t.Fatalf("Save(Load()): %v", err)
	}
	after, err := os.ReadFile(doc.Filename())
	if err != nil {
		t.Fatalf("ReadFile(): %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Fatalf("save(load()) should be a no-op:\n%s\nvs\n%s", before, after)
	}
}

func TestCorruptDocument(t *testing.T) {

	doc := tempDoc(t)
	if err := os.WriteFile(doc.Filename(), []byte("{ not json"), 0o644); err != nil {
		t.Fatalf("WriteFile(): %v", err)
	}
	if _, err := doc.Load(); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("Load() of garbage should report ErrCorrupt, got %v", err)
	}
	// The corrupt file must stay on disk untouched for the operator
	data, err := os.ReadFile(doc.Filename())
	if err != nil || string(data) != "{ not json" {
		t.Fatalf("corrupt file should be left alone, got %q, %v", data, err)
	}
}

func TestUpdateRemoveKeepsOrder(t *testing.T) {

	doc := tempDoc(t)
	err := doc.Save([]FAQ{
		{Question: "first"},
		{Question: "second"},
		{Question: "third"},
	})
	if err != nil {
		t.Fatalf("Save(): %v", err)
	}

	// Remove entry #1, the remaining two keep their relative order
	err = doc.Update(func(entries []FAQ) ([]FAQ, error) {
		return append(entries[:0], entries[1:]...), nil
	})
	if err != nil {
		t.Fatalf("Update(): %v", err)
	}
	entries, _ := doc.Load()
	if len(entries) != 2 || entries[0].Question != "second" || entries[1].Question != "third" {
		t.Fatalf("order after removal is wrong: %v", entries)
	}
}

func TestUpdateErrorWritesNothing(t *testing.T) {

	doc := tempDoc(t)
	if err := doc.Save([]FAQ{{Question: "keep me"}}); err != nil {
		t.Fatalf("Save(): %v", err)
	}
	boom := errors.New("boom")
	err := doc.Update(func(entries []FAQ) ([]FAQ, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Update() should propagate the callback error, got %v", err)
	}
	entries, _ := doc.Load()
	if len(entries) != 1 || entries[0].Question != "keep me" {
		t.Fatalf("failed update must not change the document: %v", entries)
	}
}

func TestConcurrentUpdatesLoseNothing(t *testing.T) {

	doc := tempDoc(t)
	if _, err := doc.Load(); err != nil {
		t.Fatalf("Load(): %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := doc.Update(func(entries []FAQ) ([]FAQ, error) {
				return append(entries, FAQ{Question: "q"}), nil
			})
			if err != nil {
				t.Errorf("Update(): %v", err)
			}
		}()
	}
	wg.Wait()

	entries, _ := doc.Load()
	if len(entries) != 20 {
		t.Fatalf("lost updates: got %d entries, want 20", len(entries))
	}
}
