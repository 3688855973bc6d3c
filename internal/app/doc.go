// Package app wires application dependencies for the CLI.
//
// It builds the bridge, the managed host, the file stores and the key
// service from Config, exposing them via the Wire struct for commands to
// use.
package app
