// Package sanitizer provides input normalization for booking data.
//
// All normalization functions are idempotent - applying them multiple times
// produces the same result. Unrecognizable input is passed through unchanged
// rather than wiped, so field validation can reject it with a useful error.
//
// Normalization includes:
//   - Phone numbers: convert to E.164 format (+[country][number])
//   - Strings: collapse whitespace runs, trim leading/trailing spaces
//   - Working-day tokens: lowercase ("Mon" becomes "mon")
//   - Slices: remove duplicates and empty values after normalization
//   - URLs: enforce HTTPS and lowercase hosts, preserve path casing
package sanitizer
