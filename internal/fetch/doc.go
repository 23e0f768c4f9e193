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

// Package fetch downloads magazine issues to disk. A Fetcher resolves an
// issue number to its download URL and streams the response body to a file
// in the destination directory. A Runner executes a whole issue set,
// sequentially by default or with a bounded number of concurrent downloads,
// reporting each outcome as it happens.
//
// A failed issue never aborts its siblings; the Runner returns one Result
// per requested issue, in request order.
package fetch
