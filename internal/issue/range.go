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

// Package issue implements range expression parsing for issue selection.
//
// A range expression is a comma-separated list of terms:
//   - "7" selects a single issue
//   - "13-37" selects every issue from 13 to 37 inclusive
//   - "last" selects the latest published issue
//   - "all" selects every issue from 1 to the latest
//
// "last" may also appear as either bound of a range ("13-last"). "all" is
// only valid as a standalone term. The parsed result is the union of all
// terms, deduplicated and sorted ascending.
//
// Example:
//
//	issues, err := issue.Parse("1,2-4,last", 10)
//	// issues == []int{1, 2, 3, 4, 10}
package issue

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	zgerrors "github.com/zinegrab/zinegrab/internal/errors"
)

// FirstIssue is the lowest issue number the site publishes.
const FirstIssue = 1

const (
	keywordLast = "last"
	keywordAll  = "all"
)

// NeedsLatest reports whether expr references the latest issue number via
// the "last" or "all" keywords. Callers use this to decide whether latest
// issue discovery is required before parsing.
func NeedsLatest(expr string) bool {
	for _, term := range strings.Split(expr, ",") {
		switch term := strings.TrimSpace(term); {
		case term == keywordAll:
			return true
		case strings.Contains(term, keywordLast):
			return true
		}
	}
	return false
}

// Validate checks expr for grammatical validity without resolving it
// against the latest issue number. It catches every failure that does not
// depend on discovery, so malformed expressions are rejected before any
// network activity.
func Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return fmt.Errorf("empty expression: %w", zgerrors.ErrInvalidRange)
	}
	for _, term := range strings.Split(expr, ",") {
		if err := validateTerm(strings.TrimSpace(term)); err != nil {
			return err
		}
	}
	return nil
}

// validateTerm checks one term's grammar. Bound ordering is only decidable
// without discovery for fully numeric ranges; a range involving "last" is
// ordered by Parse once the latest issue is known.
func validateTerm(term string) error {
	if term == keywordAll {
		return nil
	}
	if strings.Contains(term, keywordAll) {
		return fmt.Errorf("%q cannot be used as part of a range: %w", keywordAll, zgerrors.ErrInvalidRange)
	}

	start, end, isRange := strings.Cut(term, "-")
	if !isRange {
		// math.MaxInt stands in for the unknown latest issue: "last"
		// resolves and the upper bound check never trips.
		_, err := parseBound(term, math.MaxInt)
		return err
	}

	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	lo, err := parseBound(start, math.MaxInt)
	if err != nil {
		return err
	}
	hi, err := parseBound(end, math.MaxInt)
	if err != nil {
		return err
	}
	if start != keywordLast && end != keywordLast && lo > hi {
		return fmt.Errorf("descending range %q: %w", term, zgerrors.ErrInvalidRange)
	}
	return nil
}

// Parse expands a range expression into a sorted, duplicate-free list of
// issue numbers.
//
// When latest > 0, every resolved issue number is validated against the
// [FirstIssue, latest] interval and violations fail with ErrOutOfRange.
// When latest == 0, the upper bound is unknown and only the lower bound is
// enforced; keyword terms ("last", "all") then fail with ErrInvalidRange
// since they cannot be resolved.
//
// Malformed input (an empty expression, an unknown token, a non-integer or
// negative number, a descending range) fails with ErrInvalidRange.
func Parse(expr string, latest int) ([]int, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, fmt.Errorf("empty expression: %w", zgerrors.ErrInvalidRange)
	}

	selected := make(map[int]struct{})
	for _, term := range strings.Split(expr, ",") {
		lo, hi, err := parseTerm(strings.TrimSpace(term), latest)
		if err != nil {
			return nil, err
		}
		for n := lo; n <= hi; n++ {
			selected[n] = struct{}{}
		}
	}

	issues := make([]int, 0, len(selected))
	for n := range selected {
		issues = append(issues, n)
	}
	slices.Sort(issues)
	return issues, nil
}

// parseTerm resolves a single term to an inclusive [lo, hi] interval.
func parseTerm(term string, latest int) (lo, hi int, err error) {
	if term == "" {
		return 0, 0, fmt.Errorf("empty term: %w", zgerrors.ErrInvalidRange)
	}

	if term == keywordAll {
		if latest <= 0 {
			return 0, 0, fmt.Errorf("%q requires the latest issue number: %w", term, zgerrors.ErrInvalidRange)
		}
		return FirstIssue, latest, nil
	}
	if strings.Contains(term, keywordAll) {
		// Matches the original behavior: "all" cannot combine with a range.
		return 0, 0, fmt.Errorf("%q cannot be used as part of a range: %w", keywordAll, zgerrors.ErrInvalidRange)
	}

	start, end, isRange := strings.Cut(term, "-")
	if !isRange {
		n, err := parseBound(term, latest)
		if err != nil {
			return 0, 0, err
		}
		return n, n, nil
	}

	lo, err = parseBound(strings.TrimSpace(start), latest)
	if err != nil {
		return 0, 0, err
	}
	hi, err = parseBound(strings.TrimSpace(end), latest)
	if err != nil {
		return 0, 0, err
	}
	if lo > hi {
		return 0, 0, fmt.Errorf("descending range %q: %w", term, zgerrors.ErrInvalidRange)
	}
	return lo, hi, nil
}

// parseBound resolves one side of a term: a positive integer or "last".
func parseBound(bound string, latest int) (int, error) {
	if bound == keywordLast {
		if latest <= 0 {
			return 0, fmt.Errorf("%q requires the latest issue number: %w", bound, zgerrors.ErrInvalidRange)
		}
		return latest, nil
	}

	n, err := strconv.Atoi(bound)
	if err != nil {
		return 0, fmt.Errorf("invalid issue number %q: %w", bound, zgerrors.ErrInvalidRange)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative issue number %d: %w", n, zgerrors.ErrInvalidRange)
	}
	if n < FirstIssue {
		return 0, fmt.Errorf("issue %d is below the first issue: %w", n, zgerrors.ErrOutOfRange)
	}
	if latest > 0 && n > latest {
		return 0, fmt.Errorf("issue %d exceeds the latest issue %d: %w", n, latest, zgerrors.ErrOutOfRange)
	}
	return n, nil
}
