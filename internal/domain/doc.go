// Package domain contains the core types shared across the application:
// inbound chat events, point ledger records, leaderboard rows, the narrow
// store interfaces the adapters implement, and the sentinel errors the
// services report.
package domain
