// Package session provides server-side sessions and their stores.
//
// A session is looked up by the token kept in the session cookie. Tokens are
// rotated on sign-in; the session ID stays stable.
//
// Two stores are available: MemoryStore for single-instance deployments and
// RedisStore when sessions must survive restarts or be shared:
//
//	store := session.NewMemoryStore(session.WithCleanupInterval(time.Minute))
//	defer store.Close()
//
//	store := session.NewRedisStore(client, "sigcraft:session")
//
// Values are stored as JSON by RedisStore. Read them back with Value, which
// decodes generic JSON into the requested type:
//
//	ident, err := session.Value[access.Identity](sess, "identity")
package session
