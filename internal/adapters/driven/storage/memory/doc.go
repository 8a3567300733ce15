// Package memory provides in-memory implementations of storage driven
// ports. These stores are ephemeral and primarily useful for tests and
// for running the bot without persistence.
package memory
