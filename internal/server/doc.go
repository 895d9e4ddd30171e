// Package server exposes the HTTP surface: the event intake webhook that
// feeds the trigger dispatcher, the admin API for overrides and awards, and
// the observability endpoints.
package server
