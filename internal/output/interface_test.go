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
	"bytes"
	"testing"
)

// Compile-time checks that both writers implement OutputWriter
var (
	_ OutputWriter = (*Writer)(nil)
	_ OutputWriter = (*MarkdownWriter)(nil)
)

func TestWriterImplementsInterface(t *testing.T) {
	buf := &bytes.Buffer{}
	writer := NewWriter(buf)

	var w OutputWriter = writer

	err := w.Write(map[string]string{"test": "data"})
	if err != nil {
		t.Errorf("Write() error = %v", err)
	}

	err = w.Close()
	if err != nil {
		t.Errorf("Close() error = %v", err)
	}

	if buf.Len() == 0 {
		t.Error("Expected data to be written to buffer")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "markdown", want: FormatMarkdown},
		{input: "MD", want: FormatMarkdown},
		{input: "json", want: FormatJSON},
		{input: " ndjson ", want: FormatJSON},
		{input: "csv", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNewStreamWriter(t *testing.T) {
	var buf bytes.Buffer

	w, err := NewStreamWriter(&buf, FormatMarkdown)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := w.(*MarkdownWriter); !ok {
		t.Errorf("expected *MarkdownWriter, got %T", w)
	}

	w, err = NewStreamWriter(&buf, FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := w.(*Writer); !ok {
		t.Errorf("expected *Writer, got %T", w)
	}

	if _, err := NewStreamWriter(&buf, Format("xml")); err == nil {
		t.Error("expected error for unknown format")
	}
}
