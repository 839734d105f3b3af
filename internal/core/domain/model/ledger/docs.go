// Package ledger provides the dealer credit ledger: a value/invariant engine
// rather than a state machine, where every mutation is transactional and
// auditable.
//
// The package includes:
//   - DealerBalance: The aggregate root holding the signed balance and the
//     credit limit of one dealer
//   - Transaction: The append-only audit record of one balance mutation
//
// Key business rules:
//   - available = creditLimit + balance; a debit may never push availability
//     below zero, and is never applied partially
//   - every balance change yields exactly one transaction record
//   - the credit limit is descriptive policy, not a clamp on existing debt
//   - balances are created lazily and never deleted
//
// Serialization of concurrent mutations on one balance is the persistence
// layer's burden (row locks inside the unit of work); the aggregate assumes
// it is mutated by one writer at a time.
package ledger
