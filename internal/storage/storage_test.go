package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		username string
		year     string
		want     string
	}{
		{"alice", "2024", "lastfm_events_alice_2024.ics"},
		{"alice", "", "lastfm_events_alice_.ics"},
	}

	for _, tt := range tests {
		if got := FileName(tt.username, tt.year); got != tt.want {
			t.Errorf("FileName(%q, %q) = %q, want %q", tt.username, tt.year, got, tt.want)
		}
	}
}

func TestNew_DefaultsToProgramDir(t *testing.T) {
	s, err := New("")
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	want, err := ProgramDir()
	if err != nil {
		t.Fatalf("ProgramDir() unexpected error: %v", err)
	}
	if s.Dir() != want {
		t.Errorf("Dir() = %q, want %q", s.Dir(), want)
	}

	wd, _ := os.Getwd()
	if s.Dir() == wd {
		t.Error("output directory should follow the program, not the working directory")
	}
}

func TestNew_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s, err := New("~/calendars")
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	if want := filepath.Join(home, "calendars"); s.Dir() != want {
		t.Errorf("Dir() = %q, want %q", s.Dir(), want)
	}
	if _, err := os.Stat(s.Dir()); err != nil {
		t.Errorf("output directory not created: %v", err)
	}
}

func TestWriteFile(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	path, err := s.WriteFile("out.ics", func(w io.Writer) error {
		_, err := io.WriteString(w, "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n")
		return err
	})
	if err != nil {
		t.Fatalf("WriteFile() unexpected error: %v", err)
	}
	if path != filepath.Join(s.Dir(), "out.ics") {
		t.Errorf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.HasPrefix(string(data), "BEGIN:VCALENDAR") {
		t.Errorf("unexpected content %q", data)
	}

	assertNoTempFiles(t, s.Dir())
}

func TestWriteFile_FailureKeepsExistingFile(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	existing := s.Path("out.ics")
	if err := os.WriteFile(existing, []byte("previous"), 0644); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("serializer failed")
	_, err = s.WriteFile("out.ics", func(w io.Writer) error {
		io.WriteString(w, "partial") // nolint:errcheck
		return boom
	})

	var writeErr *WriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("expected *WriteError, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("error %v should wrap the write failure", err)
	}
	if writeErr.Path != existing {
		t.Errorf("Path = %q, want %q", writeErr.Path, existing)
	}

	data, _ := os.ReadFile(existing)
	if string(data) != "previous" {
		t.Errorf("existing file changed to %q", data)
	}

	assertNoTempFiles(t, s.Dir())
}

func TestWriteFile_UnwritableDir(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	if err := os.RemoveAll(dir); err != nil {
		t.Fatal(err)
	}

	_, err = s.WriteFile("out.ics", func(w io.Writer) error { return nil })
	var writeErr *WriteError
	if !errors.As(err, &writeErr) {
		t.Errorf("expected *WriteError, got %v", err)
	}
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("temporary file left behind: %s", e.Name())
		}
	}
}
