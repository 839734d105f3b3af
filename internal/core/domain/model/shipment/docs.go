// Package shipment provides domain entities for carrier-tracked delivery of
// paid orders.
//
// The package includes:
//   - Shipment: The aggregate root, 1:1 with an order
//   - Status: A state machine for preparing -> shipped -> delivered, with
//     returned reachable from any non-delivered state
//   - AdminNote: An immutable, timestamped audit entry owned by a shipment
//
// Key business rules:
//   - the tracking number is set once known and never cleared
//   - shippedAt/deliveredAt are stamped the first time their status is reached
//   - delivered shipments cannot be cancelled
//   - a shipment is delayed when its delivery estimate is set, in the past,
//     and the status is before delivered
package shipment
