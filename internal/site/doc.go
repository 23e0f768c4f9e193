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

// Package site discovers the latest published issue number of the magazine
// site. The markup scraping is deliberately confined to this package: the
// index page layout is outside our control, so everything downstream depends
// only on the Locator interface and can be tested with MockLocator.
//
// The package includes:
//   - A Locator interface for latest-issue discovery
//   - An HTTP implementation that scrapes the site's issue index page
//   - A mock locator for testing
//
// Basic usage:
//
//	locator, err := site.NewIndexLocator(client, "https://www.digitalwhisper.co.il/issues", `issue([0-9]+)`, "zinegrab")
//	if err != nil {
//	    // Handle error
//	}
//	latest, err := locator.LatestIssue(ctx)
package site
