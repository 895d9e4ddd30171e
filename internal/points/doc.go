// Package points implements the append-only points ledger: awarding,
// exact-summation totals, Pacific-timezone leaderboard windows, and the
// milestone classifier for celebration-worthy totals.
package points
