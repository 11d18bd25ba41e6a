// Package memory provides in-memory implementations of driven ports.
// They back tests and runs with the persistent cache disabled.
package memory
