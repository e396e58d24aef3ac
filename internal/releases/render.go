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

package releases

import (
	"fmt"
	"strings"
)

// dateLayout is the publish date format used in rendered lines.
const dateLayout = "2006-01-02"

// Render formats repositories as a Markdown bullet list, one line per
// repository in the given order:
//
//	* 2025-01-06: [`name`](url) `v0.5.0` ([Changelog](release-url), [Tree](url/tree/v0.5.0))
//
// Every line ends with two spaces, a Markdown hard line break. Lines are
// joined by a newline with no trailing newline.
func Render(repos []Repository) string {
	lines := make([]string, 0, len(repos))
	for _, r := range repos {
		lines = append(lines, renderLine(r))
	}
	return strings.Join(lines, "\n")
}

func renderLine(r Repository) string {
	repoLink := fmt.Sprintf("[`%s`](%s)", r.Name, r.URL)
	treeLink := fmt.Sprintf("[Tree](%s)", r.TreeURL())
	changelogLink := fmt.Sprintf("[Changelog](%s)", r.LastRelease.URL)
	published := r.LastRelease.Published.Format(dateLayout)

	return fmt.Sprintf("* %s: %s `%s` (%s, %s)  ", published, repoLink, r.LastRelease.TagName, changelogLink, treeLink)
}
