// Package application provides application initialization and dependency wiring.
// It turns a resolved configuration into stock, cut list, packer and report
// instances and runs a single plan, keeping the main package focused on CLI
// parsing and exit codes.
package application
