// Package api serves caption parsing over HTTP.
//
// Routes:
//
//	GET  /health      liveness probe, never authenticated
//	POST /api/parse   request body is a timed-text document; ?format=json|srt
//	GET  /api/cache   cached document summaries (when a cache is configured)
//
// When a token is configured every /api route requires
// "Authorization: Bearer <token>". Parse failures answer 422 with a JSON body
// carrying the error text, the failing phase and the diagnostic code.
package api
