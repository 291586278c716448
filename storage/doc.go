// Package storage provides ImageSource and ImageSink implementations for
// the docscan Scanner: a file-system pair that writes atomically and an
// in-memory store.
package storage
