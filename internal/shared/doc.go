// Package shared provides common utilities and test helpers used across
// the codebase. It is a home for functionality that does not belong to
// any specific domain package.
//
// The testutil subpackage provides a capturing slog handler so tests can
// assert on log output without parsing serialized records.
//
// This package should only contain generic helpers with no domain logic
// and no dependencies on other internal packages.
package shared
