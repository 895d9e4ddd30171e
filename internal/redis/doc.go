// Package redis holds the Redis adapter: the instrumented client, the
// trigger override cache, and the giver-side points cooldown.
package redis
