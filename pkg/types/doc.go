// Package types defines the title, backup and result types shared by the
// savekeep engine, the collaborator interfaces it consumes (title catalog,
// configuration store, secure storage, flash-cart and GBA virtual-console
// drivers), and the standard error values.
package types
