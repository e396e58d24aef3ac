// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Default README markers delimiting the generated release list.
const (
	DefaultStartMarker = "<!-- readme-rel start -->"
	DefaultEndMarker   = "<!-- readme-rel end -->"
)

// ErrMarkersNotFound is returned when a document lacks the start or end
// marker, or they appear out of order.
var ErrMarkersNotFound = errors.New("readme markers not found")

// Splice replaces everything between the start and end markers of doc with
// block. The markers themselves and all text outside them are kept. The
// block is placed on its own lines between the markers.
func Splice(doc, block, start, end string) (string, error) {
	startIdx := strings.Index(doc, start)
	if startIdx < 0 {
		return "", fmt.Errorf("start marker %q: %w", start, ErrMarkersNotFound)
	}
	contentStart := startIdx + len(start)

	endOffset := strings.Index(doc[contentStart:], end)
	if endOffset < 0 {
		return "", fmt.Errorf("end marker %q: %w", end, ErrMarkersNotFound)
	}
	contentEnd := contentStart + endOffset

	var b strings.Builder
	b.Grow(len(doc) + len(block))
	b.WriteString(doc[:contentStart])
	b.WriteString("\n")
	if block != "" {
		b.WriteString(block)
		b.WriteString("\n")
	}
	b.WriteString(doc[contentEnd:])
	return b.String(), nil
}

// SpliceReadme applies Splice to the file at path and rewrites it in place.
// The new content goes to a temporary file in the same directory which is
// then renamed over the original, keeping its permissions.
func SpliceReadme(path, block, start, end string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat readme: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read readme %s: %w", path, err)
	}

	updated, err := Splice(string(data), block, start, end)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(updated); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write readme: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Chmod(tmpName, info.Mode().Perm()); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to set readme permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace readme: %w", err)
	}

	return nil
}
