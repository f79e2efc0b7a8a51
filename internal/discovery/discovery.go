// Package discovery enumerates candidate source images in the scan root.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Extensions is the exact list of recognized source extensions. Matching is
// a literal suffix comparison against these entries: the list deliberately
// carries both-case variants for some extensions and a single case for
// others, and that asymmetry is part of the selection behavior ("a.jpeg"
// and "a.JPEG" match, "a.Jpeg" does not).
var Extensions = []string{".jpg", ".jpeg", ".png", ".heic", ".HEIC", ".JPG", ".JPEG", ".PNG"}

// Candidate is a discovered source file. It is created here and never
// mutated afterwards.
type Candidate struct {
	// Path is the full path to the source file.
	Path string
	// Name is the file's base name.
	Name string
	// Ext is the matched extension, exactly as listed in Extensions.
	Ext string
	// Stem is the base name without the matched extension.
	Stem string
}

// IsHEIC reports whether the candidate routes through the two-step
// decode-then-encode path. This one check is case-insensitive: both listed
// HEIC spellings take the same path.
func (c Candidate) IsHEIC() bool {
	return strings.EqualFold(c.Ext, ".heic")
}

// Discover lists candidates directly inside root. Subdirectories are not
// entered and dotfiles are skipped. The returned order is directory
// enumeration order and carries no meaning.
func Discover(root string) ([]Candidate, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	var candidates []Candidate
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		ext, ok := matchExtension(name)
		if !ok {
			continue
		}
		candidates = append(candidates, Candidate{
			Path: filepath.Join(root, name),
			Name: name,
			Ext:  ext,
			Stem: strings.TrimSuffix(name, ext),
		})
	}
	return candidates, nil
}

func matchExtension(name string) (string, bool) {
	for _, ext := range Extensions {
		if len(name) > len(ext) && strings.HasSuffix(name, ext) {
			return ext, true
		}
	}
	return "", false
}
