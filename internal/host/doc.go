// Package host is the managed side of the boundary.
//
// It owns a managed heap and drives a bridge.Bridge the way managed code
// would: arguments are allocated as managed values, the boundary call is
// made, the result is read back, and every local reference is dropped.
// Config wraps a native config handle and guarantees it is released at
// most once.
package host
