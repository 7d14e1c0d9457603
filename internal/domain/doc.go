// Package domain defines the fixed-size key material types and the contracts
// shared across the library. It contains plain types and interfaces only.
package domain
