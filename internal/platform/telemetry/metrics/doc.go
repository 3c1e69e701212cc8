// Package metrics holds the Prometheus collectors for the admin service.
//
// Collectors register with the default registry at init and are exposed by
// the /metrics route through promhttp. Record through the helper functions so
// label values stay bounded.
package metrics
