package crypto

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/curve25519"

	"sessionbridge/internal/codec"
	"sessionbridge/internal/util/memzero"
)

// NonceSize is the size of the nonce shared by every ciphertext of an envelope.
const NonceSize = chacha20poly1305.NonceSizeX

var (
	// ErrNoRecipients is returned when an envelope would have no recipients.
	ErrNoRecipients = errors.New("no recipients")
	// ErrMessageCount is returned unless there is one message, or one per recipient.
	ErrMessageCount = errors.New("message count must be 1 or match recipient count")
	// ErrInvalidNonce is returned when a nonce is not NonceSize bytes.
	ErrInvalidNonce = errors.New("invalid nonce")
	// ErrInvalidDomain is returned for an empty domain or one longer than a BLAKE2b key.
	ErrInvalidDomain = errors.New("invalid encryption domain")
	// ErrMalformedEnvelope is returned when an envelope cannot be decoded.
	ErrMalformedEnvelope = errors.New("malformed envelope")
)

// envelope is the wire form shared by every recipient.
type envelope struct {
	Nonce       []byte   `cbor:"#"`
	Ciphertexts [][]byte `cbor:"e"`
}

// NewNonce reads a fresh envelope nonce from r.
func NewNonce(r io.Reader) ([]byte, error) {
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(r, nonce); err != nil {
		return nil, err
	}
	return nonce, nil
}

// EncryptForMultiple seals messages for recipients and returns the encoded
// envelope. A single message is sealed for every recipient; otherwise
// messages[i] is sealed for recipients[i].
func EncryptForMultiple(
	messages [][]byte,
	recipients [][]byte,
	ed25519SecretKey []byte,
	domain string,
	nonce []byte,
) ([]byte, error) {
	if len(recipients) == 0 {
		return nil, ErrNoRecipients
	}
	if len(messages) != 1 && len(messages) != len(recipients) {
		return nil, fmt.Errorf("%w: %d messages, %d recipients", ErrMessageCount, len(messages), len(recipients))
	}
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidNonce, NonceSize, len(nonce))
	}
	if err := checkDomain(domain); err != nil {
		return nil, err
	}

	xsk, err := Ed25519SKToCurve25519(ed25519SecretKey)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(xsk[:])
	senderPub, err := x25519Public(xsk[:])
	if err != nil {
		return nil, err
	}

	out := envelope{Nonce: nonce, Ciphertexts: make([][]byte, 0, len(recipients))}
	for i, r := range recipients {
		recipientPub, err := recipientKey(r)
		if err != nil {
			return nil, fmt.Errorf("recipient %d: %w", i, err)
		}
		key, err := sharedKey(xsk[:], recipientPub, senderPub, recipientPub, domain)
		if err != nil {
			return nil, fmt.Errorf("recipient %d: %w", i, err)
		}
		aead, err := chacha20poly1305.NewX(key)
		memzero.Zero(key)
		if err != nil {
			return nil, err
		}
		msg := messages[0]
		if len(messages) > 1 {
			msg = messages[i]
		}
		out.Ciphertexts = append(out.Ciphertexts, aead.Seal(nil, nonce, msg, nil))
	}
	return codec.Marshal(out)
}

// DecryptForMultiple opens the first ciphertext in envelope that
// authenticates for the holder of ed25519SecretKey. ok is false when none does.
func DecryptForMultiple(
	encoded []byte,
	ed25519SecretKey []byte,
	senderEd25519Pub []byte,
	domain string,
) (plaintext []byte, ok bool, err error) {
	var env envelope
	if err := codec.Unmarshal(encoded, &env); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if len(env.Nonce) != NonceSize {
		return nil, false, fmt.Errorf("%w: nonce is %d bytes", ErrMalformedEnvelope, len(env.Nonce))
	}
	if err := checkDomain(domain); err != nil {
		return nil, false, err
	}

	senderPub, err := Ed25519PKToCurve25519(senderEd25519Pub)
	if err != nil {
		return nil, false, err
	}
	xsk, err := Ed25519SKToCurve25519(ed25519SecretKey)
	if err != nil {
		return nil, false, err
	}
	defer memzero.Zero(xsk[:])
	ourPub, err := x25519Public(xsk[:])
	if err != nil {
		return nil, false, err
	}

	key, err := sharedKey(xsk[:], senderPub[:], senderPub[:], ourPub, domain)
	if err != nil {
		return nil, false, err
	}
	aead, err := chacha20poly1305.NewX(key)
	memzero.Zero(key)
	if err != nil {
		return nil, false, err
	}
	for _, ct := range env.Ciphertexts {
		if pt, err := aead.Open(nil, env.Nonce, ct, nil); err == nil {
			return pt, true, nil
		}
	}
	return nil, false, nil
}

// sharedKey derives the per-recipient key from DH(ourSecret, theirPub)
// bound to both public keys and the domain.
func sharedKey(ourSecret, theirPub, senderPub, recipientPub []byte, domain string) ([]byte, error) {
	if len(theirPub) != curve25519.PointSize {
		return nil, ErrInvalidPublicKey
	}
	dh, err := curve25519.X25519(ourSecret, theirPub)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	defer memzero.Zero(dh)

	h, err := blake2b.New256([]byte(domain))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDomain, err)
	}
	h.Write(dh)
	h.Write(senderPub)
	h.Write(recipientPub)
	return h.Sum(nil), nil
}

func checkDomain(domain string) error {
	if domain == "" || len(domain) > blake2b.Size {
		return fmt.Errorf("%w: length %d", ErrInvalidDomain, len(domain))
	}
	return nil
}
