// Package queries holds the read-side use cases of the order service.
package queries
