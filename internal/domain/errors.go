package domain

import "errors"

var (
	// ErrKVNotFound is returned by KVStore.Get when no value exists.
	ErrKVNotFound = errors.New("kv entry not found")

	// ErrInvalidAmount is returned when an award amount is below 1 or
	// above the configured per-grant maximum.
	ErrInvalidAmount = errors.New("invalid point amount")

	// ErrSelfAward is returned when giver and receiver are the same user.
	ErrSelfAward = errors.New("cannot award points to yourself")

	// ErrBotRecipient is returned when the receiver is an automated actor.
	ErrBotRecipient = errors.New("cannot award points to bots")
)
