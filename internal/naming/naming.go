// Package naming reserves collision-free output paths.
package naming

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Reserve claims a destination for stem inside dir: stem.ext, then
// stem_1.ext, stem_2.ext and so on until a free name is found. The claim is
// made with exclusive create, so a reservation is an atomic filesystem fact
// and two callers can never be handed the same path, even across processes.
// The reserved file is empty; the encoder overwrites it in place.
func Reserve(dir, stem, ext string) (string, error) {
	stem = strings.TrimSpace(stem)
	if stem == "" {
		return "", errors.New("output stem required")
	}

	for counter := 0; ; counter++ {
		name := stem + ext
		if counter > 0 {
			name = fmt.Sprintf("%s_%d%s", stem, counter, ext)
		}
		path := filepath.Join(dir, name)

		file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err != nil {
			if errors.Is(err, os.ErrExist) {
				continue
			}
			return "", fmt.Errorf("reserve %s: %w", path, err)
		}
		if err := file.Close(); err != nil {
			return "", fmt.Errorf("reserve %s: %w", path, err)
		}
		return path, nil
	}
}

// Release removes a reservation whose job failed, so a later run can claim
// the name again. Missing files are fine: the failed tool may have removed
// its own partial output.
func Release(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("release %s: %w", path, err)
	}
	return nil
}
