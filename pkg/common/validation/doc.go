// Package validation provides common validation utilities for configuration
// parameters across the finflow library.
//
// Limiter constructors and the registry config loader use these helpers so
// that every rejected value surfaces as an *errors.ValidationError carrying
// the module, field and a remediation hint.
package validation
