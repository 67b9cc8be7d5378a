// Package kernel provides the value objects shared by the order domain:
//   - UUID: the opaque identifier of an order
//   - Money: an exact, scale-preserving decimal amount
//   - SystemClock and UUIDGenerator: the default time and identity sources
//
// Value objects are immutable and safe for concurrent use. A zero UUID is
// invalid and fails Validate; a zero Money is simply 0.
package kernel
