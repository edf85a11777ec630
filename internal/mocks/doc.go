// Package mocks provides centralized mock implementations for testing.
//
// This package contains mock implementations of interfaces used throughout
// the application, facilitating consistent testing across the codebase.
// Instead of defining inline mocks in individual test files, these
// standardized mock implementations can be reused.
//
// The store mocks are safe for concurrent use so tests can exercise the
// atomicity guarantees the real stores make (e.g., exactly one of N
// concurrent registrations with the same username succeeding).
package mocks
