// Package health provides HTTP handlers for service health monitoring.
//
//	r.Get("/live", health.Liveness[*app.Context])
//	r.Get("/ready", health.Readiness[*app.Context](log,
//		pg.Healthcheck(pool),
//		redis.Healthcheck(client),
//	))
//
// Readiness runs its checks concurrently under CheckTimeout and answers 503
// when any of them fails.
package health
