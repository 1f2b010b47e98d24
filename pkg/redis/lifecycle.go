package redis

import (
	"context"
	"errors"
	"io"

	"github.com/redis/go-redis/v9"
)

// Healthcheck returns a readiness check that pings the session backend.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return ErrHealthcheckFailed
		}
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Shutdown returns a hook that closes client when the server stops.
// Closing an already closed client is not an error.
func Shutdown(client io.Closer) func(context.Context) error {
	return func(context.Context) error {
		if client == nil {
			return nil
		}
		if err := client.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
			return err
		}
		return nil
	}
}
