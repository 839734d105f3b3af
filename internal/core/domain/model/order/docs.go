// Package order provides domain entities and business logic for the order
// fulfillment lifecycle. It implements the Order aggregate root with two
// independent state machines and an append-only status log.
//
// The package includes:
//   - Order: The aggregate root managing identity, totals, and both lifecycles
//   - Status: A state machine enforcing the order lifecycle transitions
//   - ProductionStatus: A monotonic state machine for the manufacturing stage
//   - Totals: A value object holding monetary amounts in integer minor units
//   - StatusLog: An append-only audit row, one per applied transition
//
// Key business rules:
//   - total = subtotal + tax + shipping - discount, always non-negative
//   - cart -> pending -> paid -> shipped -> delivered, with cancellation from
//     any non-terminal state and refund from paid or shipped
//   - production advances one stage at a time and only once the order is paid
//   - re-requesting the current state on either axis is an idempotent no-op
//   - delivered, cancelled, and refunded orders are immutable except the log
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
