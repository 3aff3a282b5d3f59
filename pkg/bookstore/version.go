// Package bookstore exposes build-level metadata about the module.
package bookstore

// Version is the semantic version of the bookstore tool.
const Version = "0.1.0"
