// Package csv exports repository reports as CSV files.
package csv
