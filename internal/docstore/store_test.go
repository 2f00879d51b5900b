package docstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ishitak12/pdfstruct/internal/docmodel"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testDoc() *docmodel.Document {
	return &docmodel.Document{Pages: []docmodel.Page{
		{PageNumber: 1, Content: []docmodel.ContentItem{
			docmodel.NewParagraph("Intro", nil, "Hello."),
		}},
	}}
}

func TestStore_SaveAndGet(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	rec := Record{
		DocID:       "abc123",
		Filename:    "report.pdf",
		Title:       "Report",
		ContentHash: "deadbeef",
		CreatedAt:   time.Now(),
	}
	if err := s.Save(ctx, rec, testDoc()); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, doc, err := s.Get(ctx, "abc123")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Filename != "report.pdf" || got.PageCount != 1 {
		t.Errorf("record = %+v", got)
	}
	if len(doc.Pages) != 1 || doc.Pages[0].Content[0].Text != "Hello." {
		t.Errorf("document round-trip mismatch: %+v", doc)
	}
}

func TestStore_GetMissing(t *testing.T) {
	s := testStore(t)
	_, _, err := s.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_SaveReplaces(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	rec := Record{DocID: "x", Filename: "a.pdf", CreatedAt: time.Now()}
	if err := s.Save(ctx, rec, testDoc()); err != nil {
		t.Fatalf("save: %v", err)
	}
	rec.Filename = "b.pdf"
	if err := s.Save(ctx, rec, testDoc()); err != nil {
		t.Fatalf("re-save: %v", err)
	}
	got, _, err := s.Get(ctx, "x")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Filename != "b.pdf" {
		t.Errorf("filename = %q, want replacement", got.Filename)
	}
}

func TestStore_ListAndDelete(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	recs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected empty store, got %d", len(recs))
	}

	for i, id := range []string{"one", "two"} {
		rec := Record{DocID: id, Filename: id + ".pdf", CreatedAt: time.Now().Add(time.Duration(i) * time.Second)}
		if err := s.Save(ctx, rec, testDoc()); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	recs, err = s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].DocID != "two" {
		t.Errorf("expected newest first, got %q", recs[0].DocID)
	}

	if err := s.Delete(ctx, "one"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, "one"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: %v, want ErrNotFound", err)
	}
}
