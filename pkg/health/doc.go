// Package health provides HTTP handlers for liveness and readiness probes.
//
// [LivenessHandler] always answers OK while the process serves requests.
// [ReadinessHandler] runs a set of named [Checks] in parallel, bounded by a timeout,
// and answers 503 when any of them fails:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "mail": smtpSender.Healthcheck(),
//	}, health.WithLogger(log)))
//
// Handlers answer plain text by default. Request JSON with the Accept header or ?format=json:
//
//	{"status":"unhealthy","checks":{"mail":{"status":"unhealthy"}}}
//
// Check errors are logged and, unless [WithErrorDetails] is set, kept out of the response
// body so that transport hostnames never reach anonymous callers.
package health
