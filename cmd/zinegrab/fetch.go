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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/zinegrab/zinegrab/internal/config"
	zgerrors "github.com/zinegrab/zinegrab/internal/errors"
	"github.com/zinegrab/zinegrab/internal/fetch"
	"github.com/zinegrab/zinegrab/internal/issue"
	"github.com/zinegrab/zinegrab/internal/site"
)

// fetchOptions carries the flag values of the fetch command.
type fetchOptions struct {
	rangeExpr    string
	destDir      string
	configPath   string
	skipExisting bool
	parallel     int
}

// fetchCmd represents the fetch command
func newFetchCommand() *cobra.Command {
	var opts fetchOptions

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the issues selected by a range expression",
		Long: `Download the issues selected by a range expression into a directory.

A range expression is a comma-separated list of terms:
  7          a single issue
  13-37      every issue from 13 to 37
  last       the latest published issue
  all        every issue from 1 to the latest
  13-last    an open-ended range up to the latest issue

The latest issue number is discovered from the site's issue index page
whenever the expression requires it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd.Context(), opts, os.Stderr)
		},
	}

	// Define flags
	cmd.Flags().StringVarP(&opts.rangeExpr, "range", "r", "", "issues to download, e.g. \"1,13-37,last\" (required)")
	cmd.Flags().StringVarP(&opts.destDir, "dir", "d", "", "destination directory (default: current working directory)")
	cmd.Flags().BoolVar(&opts.skipExisting, "skip-existing", false, "skip issues whose file already exists instead of overwriting")
	cmd.Flags().IntVar(&opts.parallel, "parallel", 0, "number of concurrent downloads (default: 1, sequential)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file path")
	_ = cmd.MarkFlagRequired("range")

	return cmd
}

// runFetch executes the fetch command
func runFetch(ctx context.Context, opts fetchOptions, progress io.Writer) error {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Flags override config defaults
	destDir := opts.destDir
	if destDir == "" {
		destDir = cfg.Defaults.Dir
	}
	parallel := opts.parallel
	if parallel == 0 {
		parallel = cfg.Defaults.Parallel
	}

	client := &http.Client{
		Timeout: time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second,
	}

	locator, err := site.NewIndexLocator(client, cfg.Site.IndexURL, cfg.Site.LatestPattern, cfg.Site.UserAgent)
	if err != nil {
		return err
	}

	// Parsing and discovery run before any filesystem or download work, so
	// a bad expression or an unreachable site aborts with nothing to clean up.
	issues, err := resolveIssues(ctx, opts.rangeExpr, locator, cfg.Defaults.ValidateBounds)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("creating destination directory %s: %v: %w", destDir, err, zgerrors.ErrDestination)
	}

	fetcher := fetch.New(fetch.Config{
		Client:           client,
		IssueURLTemplate: cfg.Site.IssueURLTemplate,
		UserAgent:        cfg.Site.UserAgent,
		SkipExisting:     opts.skipExisting,
	})

	fmt.Fprintf(progress, "Fetching %d issues into %s\n", len(issues), destDir)
	results := fetch.NewRunner(fetcher, parallel, progress).Run(ctx, issues, destDir)

	return summarize(results, progress)
}

// resolveIssues expands a range expression into concrete issue numbers,
// performing latest-issue discovery only when the expression or the bound
// validation policy requires it.
func resolveIssues(ctx context.Context, expr string, locator site.Locator, validateBounds bool) ([]int, error) {
	// Malformed expressions are rejected before any network activity.
	if err := issue.Validate(expr); err != nil {
		return nil, err
	}

	latest := 0
	if validateBounds || issue.NeedsLatest(expr) {
		var err error
		latest, err = locator.LatestIssue(ctx)
		if err != nil {
			return nil, err
		}
	}
	return issue.Parse(expr, latest)
}

// summarize reports run totals. Partial download failures keep exit code 0;
// only a run where every issue failed is promoted to an error.
func summarize(results []fetch.Result, progress io.Writer) error {
	var saved, skipped, failed int
	for _, res := range results {
		switch {
		case res.Failed():
			failed++
		case res.Skipped:
			skipped++
		default:
			saved++
		}
	}

	fmt.Fprintf(progress, "Done: %d saved, %d skipped, %d failed\n", saved, skipped, failed)

	if failed > 0 && failed == len(results) {
		return fmt.Errorf("%d of %d issues failed: %w", failed, len(results), zgerrors.ErrAllDownloadsFailed)
	}
	return nil
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	// Check for specific error types
	if errors.Is(err, zgerrors.ErrInvalidRange) ||
		errors.Is(err, zgerrors.ErrOutOfRange) {
		return 2 // Range expression errors
	}

	if errors.Is(err, zgerrors.ErrSiteUnavailable) {
		return 3 // Site/network errors
	}

	if errors.Is(err, zgerrors.ErrDestination) {
		return 4 // Destination directory errors
	}

	return 1 // General error
}
