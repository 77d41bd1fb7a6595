// Package kernel holds the value objects shared by every aggregate of the
// storefront domain: identifiers, money amounts and postal addresses.
//
// All kernel types are immutable. Their zero values are invalid and report
// an error from Validate, so a value that skipped its constructor is caught
// the first time an aggregate tries to use it.
package kernel
