// Package testutil provides utilities for testing anek components.
//
// Key components:
//   - TestEnvironment: a project on an in-memory or temp-dir filesystem
//   - ProjectBuilder helpers to declare category files inline
//
// Usage guidelines:
//   - Most tests should use EnvMemoryOnly for speed and isolation
//   - Tests that spawn processes or watch files need EnvIsolated
//   - All test data should be defined inline, not in external files
package testutil
