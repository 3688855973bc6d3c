package interfaces

import domaintypes "sessionbridge/internal/domain/types"

// KeyService creates, retrieves, and inspects the host key pair.
type KeyService interface {
	GenerateKeyPair(passphrase string, seed []byte) (
		domaintypes.KeyPair,
		domaintypes.SessionID,
		error,
	)
	LoadKeyPair(passphrase string) (domaintypes.KeyPair, error)
	SessionID(passphrase string) (domaintypes.SessionID, error)
}
