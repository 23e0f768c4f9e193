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
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
)

// Result is the outcome of fetching a single issue.
type Result struct {
	// Issue is the requested issue number.
	Issue int

	// Path is the saved file path. Set on success and on skip.
	Path string

	// Size is the number of bytes written on success.
	Size int64

	// Skipped reports that the file already existed and was left untouched.
	Skipped bool

	// Err is the failure reason, nil on success.
	Err error
}

// Failed reports whether the issue could not be fetched or saved.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Config holds the settings for a Fetcher.
type Config struct {
	// Client is the HTTP client to download with. Defaults to
	// http.DefaultClient when nil.
	Client *http.Client

	// IssueURLTemplate is a fmt template applied to the issue number,
	// using indexed verbs (%[1]d) when the number appears more than once.
	IssueURLTemplate string

	// UserAgent is sent with every download request.
	UserAgent string

	// SkipExisting leaves issues whose file is already on disk untouched
	// instead of overwriting them.
	SkipExisting bool
}

// Fetcher downloads individual issues. Each fetch is independent: the
// filename is derived from the issue number alone, so the same request
// always produces the same output path.
type Fetcher struct {
	client       *http.Client
	template     string
	userAgent    string
	skipExisting bool
}

// New creates a Fetcher from the given configuration.
func New(cfg Config) *Fetcher {
	client := cfg.Client
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{
		client:       client,
		template:     cfg.IssueURLTemplate,
		userAgent:    cfg.UserAgent,
		skipExisting: cfg.SkipExisting,
	}
}

// IssueURL returns the download URL for an issue number.
func (f *Fetcher) IssueURL(issue int) string {
	return fmt.Sprintf(f.template, issue)
}

// Filename returns the name the issue is saved under, the last path element
// of its download URL.
func (f *Fetcher) Filename(issue int) string {
	if u, err := url.Parse(f.IssueURL(issue)); err == nil {
		if base := path.Base(u.Path); base != "" && base != "." && base != "/" {
			return base
		}
	}
	return fmt.Sprintf("issue-%d.pdf", issue)
}

// Fetch downloads one issue into destDir. An existing file of the same name
// is overwritten unless the Fetcher was configured to skip existing files.
// Failures are returned inside the Result rather than aborting anything.
func (f *Fetcher) Fetch(ctx context.Context, issue int, destDir string) Result {
	dest := filepath.Join(destDir, f.Filename(issue))

	if f.skipExisting {
		if _, err := os.Stat(dest); err == nil {
			return Result{Issue: issue, Path: dest, Skipped: true}
		}
	}

	issueURL := f.IssueURL(issue)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, issueURL, nil)
	if err != nil {
		return Result{Issue: issue, Err: fmt.Errorf("building request for issue %d: %w", issue, err)}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return Result{Issue: issue, Err: fmt.Errorf("fetching issue %d: %w", issue, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{Issue: issue, Err: fmt.Errorf("issue %d: %s returned status %d", issue, issueURL, resp.StatusCode)}
	}

	file, err := os.Create(dest)
	if err != nil {
		return Result{Issue: issue, Err: fmt.Errorf("creating %s: %w", dest, err)}
	}

	size, err := io.Copy(file, resp.Body)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return Result{Issue: issue, Err: fmt.Errorf("saving issue %d to %s: %w", issue, dest, err)}
	}

	return Result{Issue: issue, Path: dest, Size: size}
}
