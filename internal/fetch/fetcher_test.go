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

package fetch

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newIssueServer serves issue files under /files/issue<N>.pdf. Issues listed
// in failing respond with 500.
func newIssueServer(t *testing.T, failing ...int) *httptest.Server {
	t.Helper()

	failSet := make(map[string]bool)
	for _, n := range failing {
		failSet[fmt.Sprintf("/files/issue%d.pdf", n)] = true
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failSet[r.URL.Path] {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if !strings.HasPrefix(r.URL.Path, "/files/issue") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprintf(w, "content of %s", r.URL.Path)
	}))
}

func newTestFetcher(server *httptest.Server, skipExisting bool) *Fetcher {
	return New(Config{
		Client:           server.Client(),
		IssueURLTemplate: server.URL + "/files/issue%[1]d.pdf",
		UserAgent:        "zinegrab-test",
		SkipExisting:     skipExisting,
	})
}

func TestIssueURL(t *testing.T) {
	f := New(Config{
		IssueURLTemplate: "https://www.digitalwhisper.co.il/files/Zines/0x%02[1]X/DigitalWhisper%[1]d.pdf",
	})

	tests := []struct {
		issue int
		want  string
	}{
		{1, "https://www.digitalwhisper.co.il/files/Zines/0x01/DigitalWhisper1.pdf"},
		{15, "https://www.digitalwhisper.co.il/files/Zines/0x0F/DigitalWhisper15.pdf"},
		{162, "https://www.digitalwhisper.co.il/files/Zines/0xA2/DigitalWhisper162.pdf"},
	}

	for _, tt := range tests {
		if got := f.IssueURL(tt.issue); got != tt.want {
			t.Errorf("IssueURL(%d) = %s, want %s", tt.issue, got, tt.want)
		}
	}

	if got := f.Filename(162); got != "DigitalWhisper162.pdf" {
		t.Errorf("Filename(162) = %s, want DigitalWhisper162.pdf", got)
	}
}

func TestFetchSavesIssue(t *testing.T) {
	server := newIssueServer(t)
	defer server.Close()

	destDir := t.TempDir()
	f := newTestFetcher(server, false)

	res := f.Fetch(context.Background(), 7, destDir)
	if res.Failed() {
		t.Fatalf("Fetch failed: %v", res.Err)
	}

	wantPath := filepath.Join(destDir, "issue7.pdf")
	if res.Path != wantPath {
		t.Errorf("Path = %s, want %s", res.Path, wantPath)
	}

	data, err := os.ReadFile(wantPath)
	if err != nil {
		t.Fatalf("reading saved issue: %v", err)
	}
	if string(data) != "content of /files/issue7.pdf" {
		t.Errorf("saved content = %q", data)
	}
	if res.Size != int64(len(data)) {
		t.Errorf("Size = %d, want %d", res.Size, len(data))
	}
}

func TestFetchOverwritesExistingFile(t *testing.T) {
	server := newIssueServer(t)
	defer server.Close()

	destDir := t.TempDir()
	dest := filepath.Join(destDir, "issue3.pdf")
	if err := os.WriteFile(dest, []byte("stale"), 0o644); err != nil {
		t.Fatalf("seeding existing file: %v", err)
	}

	f := newTestFetcher(server, false)

	// Same input must produce the same output path, replacing the old file.
	for i := 0; i < 2; i++ {
		res := f.Fetch(context.Background(), 3, destDir)
		if res.Failed() {
			t.Fatalf("Fetch failed: %v", res.Err)
		}
		if res.Path != dest {
			t.Errorf("Path = %s, want %s", res.Path, dest)
		}
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading saved issue: %v", err)
	}
	if string(data) != "content of /files/issue3.pdf" {
		t.Errorf("saved content = %q, want fresh download", data)
	}
}

func TestFetchSkipExisting(t *testing.T) {
	server := newIssueServer(t)
	defer server.Close()

	destDir := t.TempDir()
	dest := filepath.Join(destDir, "issue3.pdf")
	if err := os.WriteFile(dest, []byte("keep me"), 0o644); err != nil {
		t.Fatalf("seeding existing file: %v", err)
	}

	f := newTestFetcher(server, true)

	res := f.Fetch(context.Background(), 3, destDir)
	if res.Failed() {
		t.Fatalf("Fetch failed: %v", res.Err)
	}
	if !res.Skipped {
		t.Error("Skipped = false, want true")
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}
	if string(data) != "keep me" {
		t.Errorf("existing file was modified: %q", data)
	}
}

func TestFetchHTTPError(t *testing.T) {
	server := newIssueServer(t, 5)
	defer server.Close()

	f := newTestFetcher(server, false)

	res := f.Fetch(context.Background(), 5, t.TempDir())
	if !res.Failed() {
		t.Fatal("Fetch of failing issue should return a failed Result")
	}
	if !strings.Contains(res.Err.Error(), "status 500") {
		t.Errorf("Err = %v, want status 500 mentioned", res.Err)
	}
}

func TestRunPartialFailure(t *testing.T) {
	server := newIssueServer(t, 2)
	defer server.Close()

	destDir := t.TempDir()
	var progress bytes.Buffer
	runner := NewRunner(newTestFetcher(server, false), 1, &progress)

	results := runner.Run(context.Background(), []int{1, 2, 3}, destDir)
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}

	if results[0].Failed() || results[2].Failed() {
		t.Errorf("issues 1 and 3 should succeed: %v, %v", results[0].Err, results[2].Err)
	}
	if !results[1].Failed() {
		t.Error("issue 2 should fail")
	}

	for _, n := range []int{1, 3} {
		if _, err := os.Stat(filepath.Join(destDir, fmt.Sprintf("issue%d.pdf", n))); err != nil {
			t.Errorf("issue %d not saved: %v", n, err)
		}
	}
	if _, err := os.Stat(filepath.Join(destDir, "issue2.pdf")); err == nil {
		t.Error("failed issue 2 should not leave a file")
	}

	out := progress.String()
	if !strings.Contains(out, "[1/3] issue #1 saved") {
		t.Errorf("progress output missing success line for issue 1:\n%s", out)
	}
	if !strings.Contains(out, "[2/3] issue #2 failed") {
		t.Errorf("progress output missing failure line for issue 2:\n%s", out)
	}
}

func TestRunParallelMatchesSequential(t *testing.T) {
	server := newIssueServer(t, 4)
	defer server.Close()

	issues := []int{1, 2, 3, 4, 5, 6}

	seqDir := t.TempDir()
	parDir := t.TempDir()

	seq := NewRunner(newTestFetcher(server, false), 1, nil).Run(context.Background(), issues, seqDir)
	par := NewRunner(newTestFetcher(server, false), 3, nil).Run(context.Background(), issues, parDir)

	if len(seq) != len(par) {
		t.Fatalf("result counts differ: %d vs %d", len(seq), len(par))
	}
	for i := range seq {
		if seq[i].Issue != par[i].Issue {
			t.Errorf("result %d: issue %d vs %d, order must match input", i, seq[i].Issue, par[i].Issue)
		}
		if seq[i].Failed() != par[i].Failed() {
			t.Errorf("issue %d: sequential failed=%v, parallel failed=%v", seq[i].Issue, seq[i].Failed(), par[i].Failed())
		}
	}
}

func TestRunEmptySet(t *testing.T) {
	server := newIssueServer(t)
	defer server.Close()

	results := NewRunner(newTestFetcher(server, false), 1, nil).Run(context.Background(), nil, t.TempDir())
	if len(results) != 0 {
		t.Errorf("len(results) = %d, want 0", len(results))
	}
}
