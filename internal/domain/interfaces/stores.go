package interfaces

import domaintypes "sessionbridge/internal/domain/types"

// KeyPairStore persists the host's long-term Ed25519 key pair.
type KeyPairStore interface {
	SaveKeyPair(passphrase string, kp domaintypes.KeyPair) error
	LoadKeyPair(passphrase string) (domaintypes.KeyPair, error)
}

// DumpStore persists config object dumps, one per namespace.
type DumpStore interface {
	SaveDump(ns domaintypes.Namespace, dump []byte) error
	// LoadDump returns ok=false when nothing has been saved for ns.
	LoadDump(ns domaintypes.Namespace) (dump []byte, ok bool, err error)
}
