// Package service contains the application's business logic, sitting
// between the HTTP handlers and the store interfaces.
package service
