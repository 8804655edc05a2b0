package ports

import "context"

// LoginThrottle counts failed logins per identity.
type LoginThrottle interface {
	Allowed(ctx context.Context, identity string) (bool, error)
	RecordFailure(ctx context.Context, identity string) error
	Reset(ctx context.Context, identity string) error
}
