// Package api contains the HTTP handlers, request/response models, and
// error mapping for the Taskwell API surface under /api/v1.
package api
