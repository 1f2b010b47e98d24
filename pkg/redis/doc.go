// Package redis opens go-redis clients for the session store.
//
// Connection settings come from [Config], which is populated from
// environment variables alongside the rest of the server configuration:
//
//	cfg := redis.Config{URL: "redis://localhost:6379/0"}
//	client, err := redis.Open(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// [Open] pings the server and retries with a growing delay, so a server
// that starts before Redis is ready still comes up. [Healthcheck] plugs
// into the readiness probe and [Shutdown] into the server's shutdown hooks.
package redis
