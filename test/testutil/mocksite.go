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
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// SiteServer simulates a magazine site: GET /issues returns an index page
// linking every issue up to Latest, and GET /files/issue<N>.pdf returns the
// issue content. Issue numbers listed in failing always respond with 500.
type SiteServer struct {
	*httptest.Server
	Latest int
}

// NewSiteServer starts a mock magazine site with the given latest issue
func NewSiteServer(t *testing.T, latest int, failing ...int) *SiteServer {
	t.Helper()

	failSet := make(map[string]bool)
	for _, n := range failing {
		failSet[fmt.Sprintf("/files/issue%d.pdf", n)] = true
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/issues":
			for n := 1; n <= latest; n++ {
				fmt.Fprintf(w, `<a href="/issue%d">Issue %d</a>`, n, n)
			}
		case failSet[r.URL.Path]:
			w.WriteHeader(http.StatusInternalServerError)
		case strings.HasPrefix(r.URL.Path, "/files/issue"):
			fmt.Fprintf(w, "pdf bytes for %s", r.URL.Path)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	return &SiteServer{Server: server, Latest: latest}
}

// WriteConfig writes a zinegrab config file pointing at the mock site and
// returns its path
func (s *SiteServer) WriteConfig(t *testing.T, validateBounds bool) string {
	t.Helper()

	content := fmt.Sprintf(`
site:
  index_url: %s/issues
  issue_url_template: "%s/files/issue%%[1]d.pdf"
  latest_pattern: "issue([0-9]+)"
  user_agent: zinegrab-test
defaults:
  validate_bounds: %v
http:
  timeout_seconds: 5
`, s.URL, s.URL, validateBounds)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}
