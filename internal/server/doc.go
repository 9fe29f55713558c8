// Package server exposes quiz generation and parsing over HTTP using gin.
//
// Routes:
//
//	POST /api/generate-questions  run the upstream workflow and parse its payload
//	POST /api/parse-questions     parse a raw payload without calling upstream
//	GET  /healthz                 liveness probe
package server
