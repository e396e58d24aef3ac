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
	"fmt"
	"io"
	"os"
	"strings"
)

// OutputWriter defines the interface for writing repository records.
// Each format decides how records are laid out; callers write records in
// their final order and Close when done.
type OutputWriter interface {
	// Write writes a single record to the output.
	Write(record interface{}) error

	// Close finishes the output and releases any resources.
	// This should be called when all writing is complete.
	Close() error
}

// Format names an output format.
type Format string

// Supported output formats
const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat validates a format name. Matching is case-insensitive and
// "md" and "ndjson" are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json", "ndjson":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want markdown or json)", s)
	}
}

// NewStreamWriter creates a writer for format on w. w is not closed.
func NewStreamWriter(w io.Writer, format Format) (OutputWriter, error) {
	switch format {
	case FormatMarkdown:
		return NewMarkdownWriter(w), nil
	case FormatJSON:
		return NewWriter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// NewFileWriter creates a writer for format that writes to a new file.
// The caller must call Close() when done to ensure the file is properly closed.
func NewFileWriter(filename string, format Format) (OutputWriter, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	switch format {
	case FormatMarkdown:
		w := NewMarkdownWriter(file)
		w.closeFunc = file.Close
		return w, nil
	case FormatJSON:
		w := NewWriter(file)
		w.closeFunc = file.Close
		return w, nil
	default:
		_ = file.Close()
		_ = os.Remove(filename)
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
