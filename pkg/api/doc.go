// Package api provides the HTTP server for the registry statistics service.
//
// # Endpoints
//
//	GET /statistics       dashboard payload (cumulative package/version series, download charts)
//	GET /statistics.json  {"totals": {"downloads": N, "packages": N, "versions": N}}
//
// Both answer 502 with a plain text "temporarily disabled" body while the
// downloads killswitch is engaged. When the counter store is unreachable,
// /statistics still answers 200 with "downloads": "unavailable" and null
// charts, while /statistics.json fails with 500.
//
// # Usage
//
//	service := stats.NewService(source, counters, killswitch, logger)
//	server := api.NewServer(service, logger, metrics)
//	http.ListenAndServe(":8080", server)
//
// Every request passes through request ID, logging, metrics and panic
// recovery middleware, and is traced with otelhttp.
package api
