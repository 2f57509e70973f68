// Package health provides HTTP handlers for liveness and readiness probes.
//
// [LivenessHandler] answers OK while the process runs. [ReadinessHandler]
// runs a set of named [Checks] in parallel under a shared timeout and answers
// 503 when any of them fails:
//
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "postgres":   db.Healthcheck(pool),
//	    "mail_relay": relay.Healthcheck(),
//	}))
//
// Responses are plain text by default. Clients sending Accept: application/json
// or ?format=json get the full per-check report.
package health
