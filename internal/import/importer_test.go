// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package catalogimport

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/unifinder/internal/config"
	"github.com/tomtom215/unifinder/internal/recommend"
)

// mockWriter records the last catalog written. When block is set, writes
// wait on it after signaling started.
type mockWriter struct {
	mu      sync.Mutex
	calls   int
	last    []recommend.Candidate
	err     error
	started chan struct{}
	block   chan struct{}
}

func (m *mockWriter) ReplaceUniversities(ctx context.Context, universities []recommend.Candidate) (int, error) {
	if m.started != nil {
		close(m.started)
	}
	if m.block != nil {
		<-m.block
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return 0, m.err
	}
	m.last = universities
	return len(universities), nil
}

const sampleCSV = "University Name,Location,Rankings\n" +
	"University of Glasgow,\"Glasgow, Scotland\",20\n" +
	"University of Edinburgh,\"Edinburgh, Scotland\",15\n" +
	",Nowhere,99\n"

func TestImporter_ImportReader(t *testing.T) {
	t.Parallel()

	w := &mockWriter{}
	imp := NewImporter(w, &config.CatalogConfig{})

	var hooked *Result
	imp.OnImport(func(r *Result) { hooked = r })

	res, err := imp.ImportReader(context.Background(), strings.NewReader(sampleCSV), FormatCSV, "upload.csv")
	if err != nil {
		t.Fatalf("ImportReader() error = %v", err)
	}
	if res.Imported != 2 || res.Rows != 3 || res.Skipped != 1 {
		t.Errorf("result = %+v", res)
	}
	if res.Source != "upload.csv" || res.Format != FormatCSV {
		t.Errorf("source/format = %q/%q", res.Source, res.Format)
	}
	if res.FinishedAt.Before(res.StartedAt) {
		t.Error("finished before started")
	}
	if len(w.last) != 2 || w.last[0].Name != "University of Glasgow" {
		t.Errorf("written = %+v", w.last)
	}
	if hooked == nil || hooked.Imported != 2 {
		t.Errorf("hook result = %+v", hooked)
	}
	if last := imp.LastResult(); last == nil || last.Imported != 2 {
		t.Errorf("LastResult() = %+v", last)
	}
}

func TestImporter_WriterErrorKeepsHooksQuiet(t *testing.T) {
	t.Parallel()

	w := &mockWriter{err: errors.New("disk full")}
	imp := NewImporter(w, nil)

	called := false
	imp.OnImport(func(*Result) { called = true })

	res, err := imp.ImportReader(context.Background(), strings.NewReader(sampleCSV), FormatCSV, "upload.csv")
	if err == nil {
		t.Fatal("expected error")
	}
	if called {
		t.Error("hook ran after a failed import")
	}
	if res == nil || res.Error == "" || res.Imported != 0 {
		t.Errorf("failed result = %+v", res)
	}
	if last := imp.LastResult(); last == nil || last.Error == "" {
		t.Errorf("LastResult() = %+v", last)
	}
}

func TestImporter_ParseErrorSkipsWriter(t *testing.T) {
	t.Parallel()

	w := &mockWriter{}
	imp := NewImporter(w, nil)

	_, err := imp.ImportReader(context.Background(), strings.NewReader("Location\nLeeds\n"), FormatCSV, "bad.csv")
	if !errors.Is(err, ErrMissingNameColumn) {
		t.Fatalf("error = %v, want ErrMissingNameColumn", err)
	}
	if w.calls != 0 {
		t.Errorf("writer called %d times", w.calls)
	}
	if imp.Running() {
		t.Error("import slot not released")
	}
}

func TestImporter_CanceledContext(t *testing.T) {
	t.Parallel()

	w := &mockWriter{}
	imp := NewImporter(w, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := imp.ImportReader(ctx, strings.NewReader(sampleCSV), FormatCSV, "x.csv"); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if w.calls != 0 {
		t.Error("writer called with canceled context")
	}
}

func TestImporter_InProgress(t *testing.T) {
	t.Parallel()

	w := &mockWriter{started: make(chan struct{}), block: make(chan struct{})}
	imp := NewImporter(w, nil)

	done := make(chan error, 1)
	go func() {
		_, err := imp.ImportReader(context.Background(), strings.NewReader(sampleCSV), FormatCSV, "first.csv")
		done <- err
	}()

	<-w.started
	if !imp.Running() {
		t.Error("Running() = false during import")
	}
	if _, err := imp.ImportReader(context.Background(), strings.NewReader(sampleCSV), FormatCSV, "second.csv"); !errors.Is(err, ErrImportInProgress) {
		t.Errorf("concurrent import error = %v, want ErrImportInProgress", err)
	}

	close(w.block)
	if err := <-done; err != nil {
		t.Errorf("first import error = %v", err)
	}
}

func TestImporter_RateLimited(t *testing.T) {
	t.Parallel()

	imp := NewImporter(&mockWriter{}, &config.CatalogConfig{MinImportInterval: time.Hour})

	if _, err := imp.ImportReader(context.Background(), strings.NewReader(sampleCSV), FormatCSV, "a.csv"); err != nil {
		t.Fatalf("first import error = %v", err)
	}
	if _, err := imp.ImportReader(context.Background(), strings.NewReader(sampleCSV), FormatCSV, "b.csv"); !errors.Is(err, ErrRateLimited) {
		t.Errorf("second import error = %v, want ErrRateLimited", err)
	}
}

func TestImporter_ImportFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "universities.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o600); err != nil {
		t.Fatal(err)
	}

	w := &mockWriter{}
	imp := NewImporter(w, nil)

	res, err := imp.Import(context.Background(), path)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if res.Source != path || res.Imported != 2 {
		t.Errorf("result = %+v", res)
	}

	if _, err := imp.Import(context.Background(), filepath.Join(dir, "missing.csv")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := imp.Import(context.Background(), filepath.Join(dir, "catalog.txt")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestImporter_LastResultIsCopy(t *testing.T) {
	t.Parallel()

	imp := NewImporter(&mockWriter{}, nil)
	if imp.LastResult() != nil {
		t.Error("LastResult() before any import should be nil")
	}

	input := "University Name,Mascot\nAston University,Lion\n"
	if _, err := imp.ImportReader(context.Background(), strings.NewReader(input), FormatCSV, "a.csv"); err != nil {
		t.Fatal(err)
	}

	r := imp.LastResult()
	r.UnknownColumns[0] = "mutated"
	if imp.LastResult().UnknownColumns[0] != "Mascot" {
		t.Error("LastResult() shares state with the importer")
	}
}
