package autosave

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/match"
)

// MaxConflictAttempts bounds how many numeric suffixes Save will try before
// giving up.
const MaxConflictAttempts = 16

// ErrBoundExceeded is returned when every candidate path up to
// MaxConflictAttempts is already taken.
var ErrBoundExceeded = errors.New("autosave: exhausted conflict-resolution attempts")

// basePattern returns the glob this package's own candidate names all match,
// used by Conflicts to find which suffixes are already taken.
func basePattern(pid int) string {
	return fmt.Sprintf("treenote.%d.save*", pid)
}

// Conflicts lists the base names in dir that look like a prior autosave from
// this same pid, via a glob match rather than a stat-per-candidate scan.
func Conflicts(dir string, pid int) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	pattern := basePattern(pid)
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if match.Match(e.Name(), pattern) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func writeIfAbsent(path, content string) bool {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return false
	}
	defer f.Close()
	_, werr := f.WriteString(content)
	return werr == nil
}

// Save writes content to <dir>/treenote.<pid>.save, or on conflict to
// <dir>/treenote.<pid>.save.0, .save.1, ... up to MaxConflictAttempts,
// returning the path actually written.
func Save(dir string, content string) (string, error) {
	pid := os.Getpid()
	base := fmt.Sprintf("treenote.%d.save", pid)

	candidate := filepath.Join(dir, base)
	if writeIfAbsent(candidate, content) {
		return candidate, nil
	}

	taken, _ := Conflicts(dir, pid)
	takenSet := make(map[string]bool, len(taken))
	for _, n := range taken {
		takenSet[n] = true
	}

	for i := 0; i < MaxConflictAttempts; i++ {
		name := fmt.Sprintf("%s.%d", base, i)
		if takenSet[name] {
			continue
		}
		candidate = filepath.Join(dir, name)
		if writeIfAbsent(candidate, content) {
			return candidate, nil
		}
	}

	return "", ErrBoundExceeded
}
