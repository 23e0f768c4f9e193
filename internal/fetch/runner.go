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
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Runner executes a resolved issue set through a Fetcher and reports every
// outcome to a progress writer as it happens. With parallel == 1 issues are
// fetched strictly in ascending order; higher values run up to that many
// downloads concurrently. Filenames are unique per issue number, so no two
// downloads ever write the same path.
type Runner struct {
	fetcher  *Fetcher
	parallel int

	mu       sync.Mutex
	progress io.Writer
}

// NewRunner creates a Runner. Progress lines are written to progress;
// io.Discard silences them. Parallel values below 1 are treated as 1.
func NewRunner(fetcher *Fetcher, parallel int, progress io.Writer) *Runner {
	if parallel < 1 {
		parallel = 1
	}
	if progress == nil {
		progress = io.Discard
	}
	return &Runner{
		fetcher:  fetcher,
		parallel: parallel,
		progress: progress,
	}
}

// Run fetches every issue in issues into destDir and returns one Result per
// issue, in input order. A failed issue never blocks the remaining ones.
func (r *Runner) Run(ctx context.Context, issues []int, destDir string) []Result {
	results := make([]Result, len(issues))
	total := len(issues)

	if r.parallel == 1 {
		for i, issue := range issues {
			results[i] = r.fetcher.Fetch(ctx, issue, destDir)
			r.report(results[i], i+1, total)
		}
		return results
	}

	var done atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallel)

	for i, issue := range issues {
		i, issue := i, issue
		g.Go(func() error {
			results[i] = r.fetcher.Fetch(ctx, issue, destDir)
			r.report(results[i], int(done.Add(1)), total)
			// Failures are carried in the Result so siblings keep going.
			return nil
		})
	}
	// Error return is always nil, the wait is for completion only.
	_ = g.Wait()

	return results
}

// report writes a single per-issue outcome line.
func (r *Runner) report(res Result, n, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case res.Failed():
		fmt.Fprintf(r.progress, "[%d/%d] issue #%d failed: %v\n", n, total, res.Issue, res.Err)
	case res.Skipped:
		fmt.Fprintf(r.progress, "[%d/%d] issue #%d skipped, %s already exists\n", n, total, res.Issue, res.Path)
	default:
		fmt.Fprintf(r.progress, "[%d/%d] issue #%d saved to %s (%.2f MB)\n", n, total, res.Issue, res.Path, megabytes(res.Size))
	}
}

// megabytes converts a byte count for display.
func megabytes(size int64) float64 {
	return float64(size) / 1e6
}
