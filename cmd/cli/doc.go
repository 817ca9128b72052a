// Package cli constructs the mirrorcheck command-line interface, wiring the
// Cobra command, configuration loader, structured logging primitives, and the
// go-git repository backend. It exposes helpers to build reusable application
// instances and to execute the scan as a reusable library.
package cli
