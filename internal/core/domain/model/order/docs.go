// Package order implements the Order aggregate and its lifecycle policy.
//
// The package includes:
//   - Order: the aggregate root holding customer, currency, line items, the
//     computed amount, status, version and timestamps
//   - Item: an order line with SKU, positive quantity and positive unit price
//   - Status: the four lifecycle states and the transition table
//
// Lifecycle:
//
//	CREATED ──┬──> PAID ──┬──> FULFILLED
//	          │           │
//	          └───────────┴──> CANCELLED
//
// FULFILLED and CANCELLED are terminal. The aggregate never mutates its own
// status in memory: status changes are applied by the repository's
// conditional write and come back as a restored Order.
package order
