// Package community implements the community URL grammar.
//
// A full community URL has the form
//
//	{scheme}://{host}[:{port}]/{room}?public_key={64 hex chars}
//
// Base URLs are canonicalised: scheme and host are lower-cased, the default
// port for the scheme and any trailing slash are dropped. Parsing also
// accepts the legacy "/r/{room}" path and a base64 public key, so that
// links shared by older clients keep working. FullURL always renders the
// canonical form, which makes ParseFullURL followed by FullURL stable for
// canonical input.
package community
