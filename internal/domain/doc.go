// Package domain defines the core business entities of the Taskwell API:
// users, tasks, and the auth tokens that bind sessions to users.
// Entities validate themselves; persistence and transport live elsewhere.
package domain
