package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist tracks revoked token ids in Redis until their natural expiry.
// Logout writes here; the request middleware checks here. Entries expire on
// their own, so the set stays bounded by the token TTL.
type Denylist struct {
	client *redis.Client
}

// NewDenylist constructs a Denylist.
func NewDenylist(client *redis.Client) *Denylist {
	return &Denylist{client: client}
}

// Revoke marks a token id as revoked until the given expiry.
func (d *Denylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// Already expired, nothing to deny.
		return nil
	}
	return d.client.Set(ctx, d.key(tokenID), "1", ttl).Err()
}

// Revoked reports whether a token id has been revoked.
func (d *Denylist) Revoked(ctx context.Context, tokenID string) (bool, error) {
	err := d.client.Get(ctx, d.key(tokenID)).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (d *Denylist) key(tokenID string) string {
	return "revoked:" + tokenID
}
