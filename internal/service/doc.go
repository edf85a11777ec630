// Package service provides application-level services that validate and
// normalize input, enforce ownership, and orchestrate operations against
// the persistence layer. Services depend only on the store interfaces,
// never on a specific storage engine.
package service
