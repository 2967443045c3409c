// Package store defines the persistence interfaces for domain entities.
// Implementations live under internal/platform; services depend only on
// these interfaces and the sentinel errors defined here.
package store
