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

package site

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	zgerrors "github.com/zinegrab/zinegrab/internal/errors"
)

const testPattern = `issue([0-9]+)`

func TestIndexLocatorLatestIssue(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{
			name: "latest listed first",
			body: `<a href="/issue162">Issue 162</a> <a href="/issue161">Issue 161</a> <a href="/issue1">Issue 1</a>`,
			want: 162,
		},
		{
			name: "latest listed last",
			body: `<a href="/issue1">1</a> <a href="/issue2">2</a> <a href="/issue3">3</a>`,
			want: 3,
		},
		{
			name: "single issue",
			body: `<a href="/issue1">Issue 1</a>`,
			want: 1,
		},
		{
			name: "duplicate links",
			body: `/issue7 /issue7 /issue5`,
			want: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			locator, err := NewIndexLocator(server.Client(), server.URL, testPattern, "zinegrab-test")
			if err != nil {
				t.Fatalf("NewIndexLocator failed: %v", err)
			}

			got, err := locator.LatestIssue(context.Background())
			if err != nil {
				t.Fatalf("LatestIssue returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("LatestIssue = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIndexLocatorSendsUserAgent(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		fmt.Fprint(w, "/issue12")
	}))
	defer server.Close()

	locator, err := NewIndexLocator(server.Client(), server.URL, testPattern, "zinegrab-test")
	if err != nil {
		t.Fatalf("NewIndexLocator failed: %v", err)
	}
	if _, err := locator.LatestIssue(context.Background()); err != nil {
		t.Fatalf("LatestIssue returned error: %v", err)
	}
	if gotAgent != "zinegrab-test" {
		t.Errorf("User-Agent = %q, want zinegrab-test", gotAgent)
	}
}

func TestIndexLocatorErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			name: "no issue links on page",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, "<html><body>maintenance</body></html>")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			locator, err := NewIndexLocator(server.Client(), server.URL, testPattern, "zinegrab-test")
			if err != nil {
				t.Fatalf("NewIndexLocator failed: %v", err)
			}

			_, err = locator.LatestIssue(context.Background())
			if !errors.Is(err, zgerrors.ErrSiteUnavailable) {
				t.Errorf("LatestIssue error = %v, want ErrSiteUnavailable", err)
			}
		})
	}
}

func TestIndexLocatorUnreachableSite(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	locator, err := NewIndexLocator(nil, url, testPattern, "zinegrab-test")
	if err != nil {
		t.Fatalf("NewIndexLocator failed: %v", err)
	}

	_, err = locator.LatestIssue(context.Background())
	if !errors.Is(err, zgerrors.ErrSiteUnavailable) {
		t.Errorf("LatestIssue error = %v, want ErrSiteUnavailable", err)
	}
}

func TestNewIndexLocatorInvalidPattern(t *testing.T) {
	if _, err := NewIndexLocator(nil, "http://example.com", "issue([0-9", "ua"); err == nil {
		t.Error("NewIndexLocator with unclosed group should fail")
	}
	if _, err := NewIndexLocator(nil, "http://example.com", "issue[0-9]+", "ua"); err == nil {
		t.Error("NewIndexLocator without capture group should fail")
	}
}

func TestMockLocator(t *testing.T) {
	mock := &MockLocator{Latest: 42}

	latest, err := mock.LatestIssue(context.Background())
	if err != nil {
		t.Fatalf("LatestIssue returned error: %v", err)
	}
	if latest != 42 {
		t.Errorf("LatestIssue = %d, want 42", latest)
	}
	if mock.CallCount != 1 {
		t.Errorf("CallCount = %d, want 1", mock.CallCount)
	}

	mock.Err = zgerrors.ErrSiteUnavailable
	if _, err := mock.LatestIssue(context.Background()); !errors.Is(err, zgerrors.ErrSiteUnavailable) {
		t.Errorf("LatestIssue error = %v, want ErrSiteUnavailable", err)
	}
}
