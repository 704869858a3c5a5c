package readthrough

import (
	"fmt"
	"time"

	"lending-metrics-api/pkg/utils"
)

type expiryKind int

const (
	expiryInvalid expiryKind = iota
	expiryNever
	expiryIn
	expiryAt
)

// ExpiryPolicy decides how long a computed value stays cached. It is one of
// NoExpiration, ExpireInSeconds or ExpireAtDate; the zero value is not a policy.
type ExpiryPolicy struct {
	kind expiryKind
	ttl  time.Duration
	at   time.Time
}

// NoExpiration stores the value without a TTL
func NoExpiration() ExpiryPolicy {
	return ExpiryPolicy{kind: expiryNever}
}

// ExpireInSeconds stores the value for n seconds
func ExpireInSeconds(n int) (ExpiryPolicy, error) {
	if n <= 0 {
		return ExpiryPolicy{}, fmt.Errorf("%w: expire in %d seconds", ErrInvalidPolicy, n)
	}
	return ExpiryPolicy{kind: expiryIn, ttl: time.Duration(n) * time.Second}, nil
}

// MustExpireInSeconds is ExpireInSeconds for constant arguments
func MustExpireInSeconds(n int) ExpiryPolicy {
	p, err := ExpireInSeconds(n)
	if err != nil {
		panic(err)
	}
	return p
}

// ExpireAtDate stores the value until the absolute time t
func ExpireAtDate(t time.Time) (ExpiryPolicy, error) {
	if t.IsZero() {
		return ExpiryPolicy{}, fmt.Errorf("%w: expire at zero time", ErrInvalidPolicy)
	}
	return ExpiryPolicy{kind: expiryAt, at: t}, nil
}

// NextSnapshotRefresh is the first minute after the next hourly snapshot
func NextSnapshotRefresh(now time.Time) time.Time {
	return utils.NextHourAt(now, time.Minute)
}

// Valid reports whether p was built by one of the constructors
func (p ExpiryPolicy) Valid() bool {
	return p.kind != expiryInvalid
}

// Expires reports whether the policy attaches any expiry
func (p ExpiryPolicy) Expires() bool {
	return p.kind == expiryIn || p.kind == expiryAt
}

// TTLAt is the lifetime a value written at now receives. ok is false for
// NoExpiration and for an absolute expiry that is not after now.
func (p ExpiryPolicy) TTLAt(now time.Time) (ttl time.Duration, ok bool) {
	switch p.kind {
	case expiryIn:
		return p.ttl, true
	case expiryAt:
		ttl = p.at.Sub(now)
		return ttl, ttl > 0
	default:
		return 0, false
	}
}

func (p ExpiryPolicy) String() string {
	switch p.kind {
	case expiryNever:
		return "no-expiration"
	case expiryIn:
		return fmt.Sprintf("expire-in:%s", p.ttl)
	case expiryAt:
		return fmt.Sprintf("expire-at:%s", p.at.UTC().Format(time.RFC3339))
	default:
		return "invalid"
	}
}
