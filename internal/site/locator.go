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
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"

	zgerrors "github.com/zinegrab/zinegrab/internal/errors"
)

// Locator discovers the latest published issue number. The result is scoped
// to a single invocation and never cached across runs.
type Locator interface {
	// LatestIssue returns the highest issue number currently published.
	LatestIssue(ctx context.Context) (int, error)
}

// IndexLocator discovers the latest issue by scraping the site's issue
// index page with a regular expression. The index page links every issue,
// so the highest captured number is the latest one regardless of the order
// the links appear in.
type IndexLocator struct {
	client    *http.Client
	indexURL  string
	pattern   *regexp.Regexp
	userAgent string
}

// NewIndexLocator creates an IndexLocator. The pattern must contain a
// single capture group matching the digits of an issue number, for example
// `issue([0-9]+)`.
func NewIndexLocator(client *http.Client, indexURL, pattern, userAgent string) (*IndexLocator, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid latest issue pattern %q: %w", pattern, err)
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("latest issue pattern %q must contain a capture group", pattern)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &IndexLocator{
		client:    client,
		indexURL:  indexURL,
		pattern:   re,
		userAgent: userAgent,
	}, nil
}

// LatestIssue implements the Locator interface. Any failure to reach the
// site, a non-200 response, or an index page that matches no issue links is
// reported as ErrSiteUnavailable.
func (l *IndexLocator) LatestIssue(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.indexURL, nil)
	if err != nil {
		return 0, fmt.Errorf("building index request: %w", err)
	}
	req.Header.Set("User-Agent", l.userAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetching issue index %s: %v: %w", l.indexURL, err, zgerrors.ErrSiteUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("issue index %s returned status %d: %w", l.indexURL, resp.StatusCode, zgerrors.ErrSiteUnavailable)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("reading issue index: %v: %w", err, zgerrors.ErrSiteUnavailable)
	}

	matches := l.pattern.FindAllSubmatch(body, -1)
	if len(matches) == 0 {
		return 0, fmt.Errorf("no issue links found on %s: %w", l.indexURL, zgerrors.ErrSiteUnavailable)
	}

	latest := 0
	for _, match := range matches {
		n, err := strconv.Atoi(string(match[1]))
		if err != nil {
			continue
		}
		if n > latest {
			latest = n
		}
	}
	if latest == 0 {
		return 0, fmt.Errorf("no usable issue number on %s: %w", l.indexURL, zgerrors.ErrSiteUnavailable)
	}

	return latest, nil
}
