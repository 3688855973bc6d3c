package host

import (
	"sessionbridge/internal/crypto"
	"sessionbridge/internal/domain"
	"sessionbridge/internal/managed"
)

// KickedDomain is the encryption domain of group removal notices.
const KickedDomain = crypto.KickedDomain

// Ed25519KeyPair derives a key pair from a 32-byte seed.
func (h *Host) Ed25519KeyPair(seed []byte) (domain.KeyPair, error) {
	f := h.frame()
	defer f.free()

	arg := f.bytes(seed)
	if f.err != nil {
		return domain.KeyPair{}, f.err
	}
	obj := f.track(h.bridge.Ed25519KeyPair(h.heap, arg))
	if f.err != nil {
		return domain.KeyPair{}, f.err
	}
	return h.bridge.KeyPairFromManaged(h.heap, obj)
}

// Ed25519PKToCurve25519 converts an Ed25519 public key to X25519.
func (h *Host) Ed25519PKToCurve25519(pk []byte) ([]byte, error) {
	f := h.frame()
	defer f.free()

	arg := f.bytes(pk)
	if f.err != nil {
		return nil, f.err
	}
	out := f.track(h.bridge.Ed25519PKToCurve25519(h.heap, arg))
	if f.err != nil {
		return nil, f.err
	}
	return h.bridge.FromManagedBytes(h.heap, out)
}

// EncryptForMultiple seals messages[i] for recipients[i]. A nil envelope
// with a nil error means the slices differ in length. A nil nonce asks the
// library for a fresh one.
func (h *Host) EncryptForMultiple(messages, recipients [][]byte, secretKey []byte, domainStr string, nonce []byte) ([]byte, error) {
	f := h.frame()
	defer f.free()

	msgs := f.byteArrays(messages)
	rcpts := f.byteArrays(recipients)
	sk := f.bytes(secretKey)
	dom := f.str(domainStr)
	var n managed.Ref
	if nonce != nil {
		n = f.bytes(nonce)
	}
	if f.err != nil {
		return nil, f.err
	}

	var out managed.Ref
	if nonce == nil {
		out = f.track(h.bridge.EncryptForMultipleSimple(h.heap, msgs, rcpts, sk, dom))
	} else {
		out = f.track(h.bridge.EncryptForMultipleSimpleNonce(h.heap, msgs, rcpts, sk, dom, n))
	}
	return h.optionalBytes(f, out)
}

// EncryptText seals message for one recipient given as its session id.
func (h *Host) EncryptText(message, recipient string, secretKey []byte, domainStr string) ([]byte, error) {
	f := h.frame()
	defer f.free()

	msg := f.str(message)
	rcpt := f.str(recipient)
	sk := f.bytes(secretKey)
	dom := f.str(domainStr)
	if f.err != nil {
		return nil, f.err
	}
	out := f.track(h.bridge.EncryptForMultipleText(h.heap, msg, rcpt, sk, dom))
	return h.optionalBytes(f, out)
}

// optionalBytes reads a nullable byte array result; null reads as nil.
func (h *Host) optionalBytes(f *frame, out managed.Ref) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	if out.IsNull() {
		return nil, nil
	}
	return h.bridge.FromManagedBytes(h.heap, out)
}

// Decrypt opens the envelope addressed to secretKey. ok is false when
// nothing authenticates.
func (h *Host) Decrypt(envelope, secretKey, senderPub []byte, domainStr string) (plaintext []byte, ok bool, err error) {
	f := h.frame()
	defer f.free()

	enc := f.bytes(envelope)
	sk := f.bytes(secretKey)
	pub := f.bytes(senderPub)
	dom := f.str(domainStr)
	if f.err != nil {
		return nil, false, f.err
	}
	out := f.track(h.bridge.DecryptForMultipleSimple(h.heap, enc, sk, pub, dom))
	if f.err != nil {
		return nil, false, f.err
	}
	if out.IsNull() {
		return nil, false, nil
	}
	plaintext, err = h.bridge.FromManagedBytes(h.heap, out)
	return plaintext, err == nil, err
}
