package booking

import "time"

// HoldDeadline returns the instant an unpaid pre-booking expires.
func HoldDeadline(createdAt time.Time, ttl time.Duration) time.Time {
	return createdAt.Add(ttl)
}

// HoldExpired reports whether a pre-booking created at createdAt has outlived
// its TTL at instant now.
func HoldExpired(createdAt time.Time, ttl time.Duration, now time.Time) bool {
	return !now.Before(HoldDeadline(createdAt, ttl))
}
