// Package services contains domain services: stateless operations that span
// an aggregate and data it does not own.
//
//   - StatusTransitionEngine applies lifecycle changes and reports the
//     resulting StatusChanged event for notification.
//   - CatalogPriceCheck compares captured line prices with the catalog at
//     checkout time.
package services
