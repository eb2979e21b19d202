// Package sequence discovers families of recordings named <prefix>_<N>.<ext>
// and orders them by N.
package sequence

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrNoMatchingFiles is returned when a directory holds no file of the family.
	ErrNoMatchingFiles = errors.New("no matching files")
	// ErrDuplicateSequence is returned when two files share a sequence number.
	ErrDuplicateSequence = errors.New("duplicate sequence number")
)

// DefaultExtensions are the audio containers accepted when none are configured.
var DefaultExtensions = []string{"m4a", "mp3", "wav", "mp4"}

// File is one member of a recording family.
type File struct {
	Sequence int
	Path     string
}

// Name returns the file's base name.
func (f File) Name() string {
	return filepath.Base(f.Path)
}

// Locate lists dir and returns the files named <prefix>_<digits>.<ext>,
// ext matched case-insensitively against exts, sorted by sequence number.
// The prefix is matched literally.
func Locate(dir, prefix string, exts []string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	pattern := familyPattern(regexp.QuoteMeta(prefix), exts)
	seen := make(map[int]string)
	var files []File

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := pattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}

		seq, err := strconv.Atoi(m[2])
		if err != nil {
			// digits too long for an int; not a usable sequence number
			continue
		}
		if prev, ok := seen[seq]; ok {
			return nil, fmt.Errorf("%w: %d (%s, %s)", ErrDuplicateSequence, seq, prev, e.Name())
		}
		seen[seq] = e.Name()

		files = append(files, File{Sequence: seq, Path: filepath.Join(dir, e.Name())})
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: prefix %q in %s", ErrNoMatchingFiles, prefix, dir)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Sequence < files[j].Sequence
	})
	return files, nil
}

// Parse splits a file name of the form <prefix>_<digits>.<ext> into its
// prefix and sequence number.
func Parse(name string, exts []string) (prefix string, seq int, ok bool) {
	m := familyPattern(`.+`, exts).FindStringSubmatch(name)
	if m == nil {
		return "", 0, false
	}

	seq, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, false
	}
	return m[1], seq, true
}

func familyPattern(prefixExpr string, exts []string) *regexp.Regexp {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	quoted := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if ext == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(ext))
	}

	// (?i) is scoped to the extension group so the prefix stays case-sensitive.
	return regexp.MustCompile(`^(` + prefixExpr + `)_(\d+)\.(?i:` + strings.Join(quoted, "|") + `)$`)
}
