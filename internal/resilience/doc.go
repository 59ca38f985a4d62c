// Package resilience provides the per-sender rate limiter and the circuit
// breaker guarding webhook processing.
// Uses golang.org/x/time/rate for token buckets and sony/gobreaker for
// circuit breaking.
package resilience
