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

// Package output writes repository records in the supported formats and
// splices rendered release lists into existing README files.
//
// Two OutputWriter implementations are provided:
//   - MarkdownWriter writes the bullet list produced by releases.Render
//   - Writer writes NDJSON (Newline Delimited JSON), one record per line
//
// Example usage:
//
//	w, err := output.NewFileWriter("releases.md", output.FormatMarkdown)
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//
//	for _, repo := range repos {
//	    if err := w.Write(repo); err != nil {
//	        return err
//	    }
//	}
//
// SpliceReadme replaces the text between two marker comments of a file:
//
//	err := output.SpliceReadme("README.md", releases.Render(repos),
//	    output.DefaultStartMarker, output.DefaultEndMarker)
package output
