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

// Package errors defines sentinel errors for consistent error handling across the application.
// These errors map to specific exit codes in the CLI for proper scripting support.
package errors

import "errors"

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrInvalidRange indicates the range expression is malformed.
	// Maps to exit code 2.
	ErrInvalidRange = errors.New("invalid range expression")

	// ErrOutOfRange indicates a requested issue number falls outside the
	// published range. Maps to exit code 2.
	ErrOutOfRange = errors.New("issue number out of range")

	// ErrSiteUnavailable indicates the magazine site could not be reached
	// or its index page could not be parsed. Maps to exit code 3.
	ErrSiteUnavailable = errors.New("magazine site unavailable")

	// ErrDestination indicates the destination directory could not be
	// created or written. Maps to exit code 4.
	ErrDestination = errors.New("destination directory unavailable")

	// ErrAllDownloadsFailed indicates every requested issue failed to
	// download. Maps to exit code 1.
	ErrAllDownloadsFailed = errors.New("all downloads failed")
)
