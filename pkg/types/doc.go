// Package types defines the bookstore entity types, the Store interface
// implemented by the record backends, the backend configuration, and the
// standard errors shared across the system.
package types
