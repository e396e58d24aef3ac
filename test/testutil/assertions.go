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

package testutil

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

// AssertNDJSONOutput validates that data holds one repository record per
// line and returns the repository names in order.
func AssertNDJSONOutput(t *testing.T, data string, expectedCount int) []string {
	t.Helper()

	scanner := bufio.NewScanner(strings.NewReader(data))
	var names []string

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		var repo map[string]interface{}
		if err := json.Unmarshal([]byte(line), &repo); err != nil {
			t.Errorf("Line %d: invalid JSON: %v", len(names)+1, err)
			continue
		}

		requiredFields := []string{"name", "url", "release_count", "last_release"}
		for _, field := range requiredFields {
			if _, ok := repo[field]; !ok {
				t.Errorf("Line %d: missing required field '%s'", len(names)+1, field)
			}
		}

		name, _ := repo["name"].(string)
		names = append(names, name)
	}

	if err := scanner.Err(); err != nil {
		t.Fatalf("Error reading output: %v", err)
	}

	if len(names) != expectedCount {
		t.Errorf("Expected %d records, got %d", expectedCount, len(names))
	}
	return names
}

// AssertMetadataFile validates a fetch statistics file written with
// --metadata and returns it decoded.
func AssertMetadataFile(t *testing.T, path, owner string) map[string]interface{} {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read metadata file: %v", err)
	}

	var metadata map[string]interface{}
	if err := json.Unmarshal(data, &metadata); err != nil {
		t.Fatalf("Invalid metadata JSON: %v", err)
	}

	requiredFields := []string{"tool_version", "query_version", "fetch_id", "parameters", "results"}
	for _, field := range requiredFields {
		if _, ok := metadata[field]; !ok {
			t.Errorf("Missing required metadata field: %s", field)
		}
	}

	params, _ := metadata["parameters"].(map[string]interface{})
	if params["owner"] != owner {
		t.Errorf("metadata owner = %v, want %s", params["owner"], owner)
	}
	return metadata
}

// AssertContainsString checks if a string contains a substring
func AssertContainsString(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Errorf("Expected string to contain %q, got: %s", needle, haystack)
	}
}

// AssertNotContainsString checks if a string does not contain a substring
func AssertNotContainsString(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		t.Errorf("Expected string to NOT contain %q, got: %s", needle, haystack)
	}
}
