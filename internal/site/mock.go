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

import "context"

// MockLocator is a mock implementation of the Locator interface for testing.
type MockLocator struct {
	// Latest is the issue number to return.
	Latest int

	// Err is the error to return instead.
	Err error

	// CallCount tracks how many times LatestIssue was called, so tests can
	// verify whether discovery happened at all.
	CallCount int
}

// LatestIssue implements the Locator interface.
func (m *MockLocator) LatestIssue(ctx context.Context) (int, error) {
	m.CallCount++

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	if m.Err != nil {
		return 0, m.Err
	}
	return m.Latest, nil
}
