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
	"sync"

	"github.com/sirseerhq/readme-rel/internal/releases"
)

// MarkdownWriter writes repositories as the Markdown bullet list produced by
// releases.Render. Lines are separated by newlines and Close terminates the
// last line, so the written text is the rendered list plus one newline.
type MarkdownWriter struct {
	mu        sync.Mutex
	output    io.Writer
	count     int
	closed    bool
	closeFunc func() error
}

// NewMarkdownWriter creates a new Markdown writer that writes to the specified output.
func NewMarkdownWriter(w io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: w}
}

// Write writes one repository line. record must be a releases.Repository
// or *releases.Repository.
func (w *MarkdownWriter) Write(record interface{}) error {
	var repo releases.Repository
	switch r := record.(type) {
	case releases.Repository:
		repo = r
	case *releases.Repository:
		repo = *r
	default:
		return fmt.Errorf("markdown output supports repositories only, got %T", record)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	sep := ""
	if w.count > 0 {
		sep = "\n"
	}
	if _, err := io.WriteString(w.output, sep+releases.Render([]releases.Repository{repo})); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}

	w.count++
	return nil
}

// Count returns the number of records written.
func (w *MarkdownWriter) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Close writes the final newline, if anything was written, and closes the
// underlying writer if it's a file.
func (w *MarkdownWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if w.count > 0 {
		if _, err := io.WriteString(w.output, "\n"); err != nil {
			return fmt.Errorf("failed to finish output: %w", err)
		}
	}

	if w.closeFunc != nil {
		return w.closeFunc()
	}
	return nil
}
