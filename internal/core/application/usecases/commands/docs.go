// Package commands contains the order use cases that write: creating an
// order (with idempotency-key replay), moving an order along its lifecycle
// under optimistic concurrency, and purging expired idempotency records.
//
// Every command is built through its constructor, which validates input
// before any I/O, and is executed by a handler holding the ports it needs.
package commands
