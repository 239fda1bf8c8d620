package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ecotrace/ewaste-tracker/internal/core/domain"
	"github.com/ecotrace/ewaste-tracker/internal/core/ports"
)

type lineWriter struct {
	got []*domain.EwasteItem
	err error
}

func (w *lineWriter) ContentType() string { return "text/csv" }

func (w *lineWriter) WriteItems(out io.Writer, items []*domain.EwasteItem) error {
	if w.err != nil {
		return w.err
	}
	w.got = items
	for _, it := range items {
		if _, err := io.WriteString(out, it.ID+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func pagedItems(total int) *stubItemService {
	return &stubItemService{
		listFn: func(_ context.Context, in ports.ListItemsInput) (*ports.ListItemsResult, error) {
			pages := (total + in.Limit - 1) / in.Limit
			start := (in.Page - 1) * in.Limit
			end := start + in.Limit
			if end > total {
				end = total
			}
			var items []*domain.EwasteItem
			for i := start; i < end; i++ {
				it := sampleItem()
				it.ID = fmt.Sprintf("item-%03d", i)
				items = append(items, it)
			}
			return &ports.ListItemsResult{Items: items, Total: int64(total), Page: in.Page, Limit: in.Limit, TotalPages: pages}, nil
		},
	}
}

func TestExportHandler_WalksAllPages(t *testing.T) {
	w := &lineWriter{}
	h := NewExportHandler(pagedItems(250), w, zerolog.Nop())
	c, rec := newContext(http.MethodGet, "/ewaste/export", "", &testPrincipal)

	if err := h.Export(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(w.got) != 250 {
		t.Fatalf("expected 250 exported items, got %d", len(w.got))
	}
	if rec.Header().Get("Content-Type") != "text/csv" {
		t.Fatalf("unexpected content type %q", rec.Header().Get("Content-Type"))
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Disposition"), "attachment;") {
		t.Fatalf("expected attachment disposition, got %q", rec.Header().Get("Content-Disposition"))
	}
}

func TestExportHandler_Empty(t *testing.T) {
	w := &lineWriter{}
	h := NewExportHandler(pagedItems(0), w, zerolog.Nop())
	c, rec := newContext(http.MethodGet, "/ewaste/export", "", &testPrincipal)

	if err := h.Export(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || len(w.got) != 0 {
		t.Fatalf("expected empty export, got code=%d items=%d", rec.Code, len(w.got))
	}
}

func TestExportHandler_WriterError(t *testing.T) {
	h := NewExportHandler(pagedItems(3), &lineWriter{err: errors.New("disk full")}, zerolog.Nop())
	c, _ := newContext(http.MethodGet, "/ewaste/export", "", &testPrincipal)

	if err := h.Export(c); err == nil {
		t.Fatal("expected error")
	}
}
