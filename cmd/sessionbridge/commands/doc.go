// Package commands defines the sessionbridge CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - keypair init   Derive and seal the host Ed25519 key pair
//   - keypair show   Print the session id and public key
//   - convert        Convert an Ed25519 public key to X25519
//   - encrypt        Seal a message for one or more recipients
//   - decrypt        Open an envelope addressed to the host key
//   - community      Parse or build community URLs
//   - sessionid      Validate a session id
//   - namespace      Resolve storage namespace identifiers
//   - config         Read and write config objects persisted per namespace
//
// # Implementation
//
// The root command builds the dependency graph (bridge, managed host,
// stores, services) before any subcommand runs. Every operation goes
// through the managed host, so each command exercises the same boundary
// calls a managed caller would make.
package commands
