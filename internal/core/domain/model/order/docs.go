// Package order implements the Order aggregate: line items with captured
// prices, the pricing breakdown, the status lifecycle and its append-only
// history.
//
// Key rules:
//   - an order has at least one item; quantities are at least 1
//   - pricing total = subtotal + tax + shipping - discount, never negative
//   - delivered and cancelled are terminal
//   - the last history entry always matches the current status
package order
