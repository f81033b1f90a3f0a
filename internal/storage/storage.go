package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Tiliavir/hourly-rate-calculator/internal/model"
)

// BaseDir returns the root data directory: $HRC_HOME if set, else ~/.hrc.
func BaseDir() (string, error) {
	if dir := os.Getenv("HRC_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".hrc"), nil
}

// DefaultSheetPath returns the path of the working sheet inside BaseDir.
func DefaultSheetPath() (string, error) {
	base, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "sheet.json"), nil
}

// LoadSheet reads the working sheet. A missing file is an empty sheet; an
// unreadable one is moved aside to <path>.corrupt so the next save starts
// clean.
func LoadSheet(path string) (model.Sheet, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return model.Sheet{Expenses: []model.ExpenseItem{}}, nil
	}
	if err != nil {
		return model.Sheet{}, fmt.Errorf("reading sheet %s: %w", path, err)
	}

	var s model.Sheet
	if err := json.Unmarshal(data, &s); err != nil {
		moved := path + ".corrupt"
		_ = os.Rename(path, moved)
		return model.Sheet{}, fmt.Errorf("sheet %s is not valid JSON, moved to %s: %w", path, moved, err)
	}
	if s.Expenses == nil {
		s.Expenses = []model.ExpenseItem{}
	}
	return s, nil
}

// SaveSheet writes s to path as indented JSON.
func SaveSheet(path string, s model.Sheet) error {
	if s.Expenses == nil {
		s.Expenses = []model.ExpenseItem{}
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding sheet: %w", err)
	}
	return WriteFileAtomic(path, 0o600, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// WriteFileAtomic creates the parent directory of path, lets write fill
// <path>.tmp and renames it over path. On any error the temporary file is
// removed and path is left as it was.
func WriteFileAtomic(path string, perm os.FileMode, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("creating %s: %w", tmp, err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
