// Package redis connects the service to a Redis server: an env-driven
// Config, a Connect helper that retries until the server is ready, and a
// healthcheck closure for readiness probes. The org package layers its
// organization cache on top of the returned client.
package redis
