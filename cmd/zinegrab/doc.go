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

// Package main implements the zinegrab command-line interface. The tool
// downloads issues of an online magazine, selected by a range expression,
// into a local directory.
//
// The CLI supports:
//   - Single issues, ranges, "last" and "all" keywords, comma-combined
//   - Sequential downloads by default, opt-in bounded parallelism
//   - Skipping issues already on disk
//   - Site endpoints configurable via YAML file or environment variables
//   - Graceful error handling with appropriate exit codes
//
// Usage:
//
//	zinegrab fetch -r <range> [flags]
//
// Example:
//
//	zinegrab fetch -r 1,13-37,last -d ./zines
//	zinegrab fetch -r all --parallel 4
//
// Exit codes:
//   - 0: Success (including partial download failures)
//   - 1: General error, or every requested issue failed to download
//   - 2: Invalid or out-of-range expression
//   - 3: Magazine site unreachable
//   - 4: Destination directory could not be created
package main
