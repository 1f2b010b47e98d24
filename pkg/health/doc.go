// Package health serves liveness and readiness probes.
//
// Liveness always answers OK while the process runs. Readiness runs the
// registered [Checks] concurrently, for example the organization config
// loader and the Redis session backend:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//		"config": loader.Ready,
//		"redis":  redis.Healthcheck(client),
//	}, health.WithLogger(log)))
//
// Responses are plain text unless the client sends Accept: application/json
// or ?format=json.
package health
