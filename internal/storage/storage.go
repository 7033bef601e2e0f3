package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Storage handles writing output files into a single directory
type Storage struct {
	dir string
}

// WriteError reports a failure writing an output file
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// New creates a Storage rooted at dir.
// An empty dir means the directory of the running program.
func New(dir string) (*Storage, error) {
	if dir == "" {
		programDir, err := ProgramDir()
		if err != nil {
			return nil, err
		}
		dir = programDir
	}

	// Expand ~ to home directory
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Storage{
		dir: dir,
	}, nil
}

// ProgramDir returns the directory of the running executable with symlinks resolved
func ProgramDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("resolving executable path: %w", err)
	}
	return filepath.Dir(exe), nil
}

// FileName returns the calendar file name for a user's listing
func FileName(username, year string) string {
	return fmt.Sprintf("lastfm_events_%s_%s.ics", username, year)
}

// Dir returns the output directory
func (s *Storage) Dir() string {
	return s.dir
}

// Path returns the full path of an output file
func (s *Storage) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// WriteFile writes an output file through write and returns its path.
// The content goes to a temporary file in the same directory that is renamed
// over name only when write succeeds; on failure the temporary file is removed
// and any existing file is left untouched.
func (s *Storage) WriteFile(name string, write func(io.Writer) error) (string, error) {
	path := s.Path(name)

	tmp, err := os.CreateTemp(s.dir, "."+name+".tmp-*")
	if err != nil {
		return "", &WriteError{Path: path, Err: err}
	}
	tmpPath := tmp.Name()

	fail := func(err error) (string, error) {
		tmp.Close()        // nolint:errcheck
		os.Remove(tmpPath) // nolint:errcheck
		return "", &WriteError{Path: path, Err: err}
	}

	if err := write(tmp); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Chmod(0644); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath) // nolint:errcheck
		return "", &WriteError{Path: path, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath) // nolint:errcheck
		return "", &WriteError{Path: path, Err: err}
	}

	return path, nil
}
