package bridge

import (
	"fmt"
	"io"

	"sessionbridge/internal/crypto"
	"sessionbridge/internal/domain"
	"sessionbridge/internal/managed"
	"sessionbridge/internal/util/memzero"
)

// Ed25519KeyPair derives a key pair from a 32-byte managed seed.
func (b *Bridge) Ed25519KeyPair(env Env, seed managed.Ref) (managed.Ref, error) {
	raw, err := b.FromManagedBytes(env, seed)
	if err != nil {
		return managed.Null, err
	}
	defer memzero.Zero(raw)
	var kp domain.KeyPair
	err = b.lib.do(func(c domain.Crypto, _ io.Reader) error {
		kp, err = c.SeedKeyPair(raw)
		return err
	})
	if err != nil {
		return managed.Null, err
	}
	defer memzero.Zero(kp.Secret[:])
	return b.ToManagedKeyPair(env, kp)
}

// Ed25519PKToCurve25519 converts a managed Ed25519 public key to its
// X25519 form. No array is allocated when the conversion fails.
func (b *Bridge) Ed25519PKToCurve25519(env Env, pk managed.Ref) (managed.Ref, error) {
	raw, err := b.FromManagedBytes(env, pk)
	if err != nil {
		return managed.Null, err
	}
	var curve domain.X25519Public
	err = b.lib.do(func(c domain.Crypto, _ io.Reader) error {
		curve, err = c.Ed25519PKToCurve25519(raw)
		return err
	})
	if err != nil {
		return managed.Null, fmt.Errorf("%w: %v", ErrInvalidKeyConversion, err)
	}
	return b.ToManagedBytes(env, curve.Slice())
}

// EncryptForMultipleSimple seals messages[i] for recipients[i] under one
// fresh nonce. The arrays must have equal length; otherwise the result is
// null and nothing is encrypted.
func (b *Bridge) EncryptForMultipleSimple(env Env, messages, recipients, secretKey, domainStr managed.Ref) (managed.Ref, error) {
	return b.encryptArrays(env, messages, recipients, secretKey, domainStr, managed.Null)
}

// EncryptForMultipleSimpleNonce is EncryptForMultipleSimple with a caller
// supplied 24-byte nonce.
func (b *Bridge) EncryptForMultipleSimpleNonce(env Env, messages, recipients, secretKey, domainStr, nonce managed.Ref) (managed.Ref, error) {
	if nonce.IsNull() {
		return managed.Null, fmt.Errorf("nonce: %w", ErrMissingField)
	}
	return b.encryptArrays(env, messages, recipients, secretKey, domainStr, nonce)
}

func (b *Bridge) encryptArrays(env Env, messages, recipients, secretKey, domainStr, nonce managed.Ref) (managed.Ref, error) {
	n, err := env.ArrayLength(messages)
	if err != nil {
		return managed.Null, err
	}
	nr, err := env.ArrayLength(recipients)
	if err != nil {
		return managed.Null, err
	}
	if n != nr {
		b.log.Warn("encrypt for multiple skipped",
			"messages", n,
			"recipients", nr,
			"error", ErrRecipientCountMismatch,
		)
		return managed.Null, nil
	}

	msgs, err := b.byteArrays(env, messages, n)
	if err != nil {
		return managed.Null, fmt.Errorf("messages: %w", err)
	}
	rcpts, err := b.byteArrays(env, recipients, n)
	if err != nil {
		return managed.Null, fmt.Errorf("recipients: %w", err)
	}
	return b.seal(env, msgs, rcpts, secretKey, domainStr, nonce)
}

// EncryptForMultipleText seals the UTF-8 bytes of message for a single
// recipient given as text, under a fresh nonce.
func (b *Bridge) EncryptForMultipleText(env Env, message, recipient, secretKey, domainStr managed.Ref) (managed.Ref, error) {
	msg, err := b.FromManagedString(env, message)
	if err != nil {
		return managed.Null, fmt.Errorf("message: %w", err)
	}
	rcpt, err := b.FromManagedString(env, recipient)
	if err != nil {
		return managed.Null, fmt.Errorf("recipient: %w", err)
	}
	return b.seal(env, [][]byte{msg}, [][]byte{rcpt}, secretKey, domainStr, managed.Null)
}

func (b *Bridge) seal(env Env, msgs, rcpts [][]byte, secretKey, domainStr, nonce managed.Ref) (managed.Ref, error) {
	sk, err := b.FromManagedBytes(env, secretKey)
	if err != nil {
		return managed.Null, fmt.Errorf("secret key: %w", err)
	}
	defer memzero.Zero(sk)
	dom, err := env.StringValue(domainStr)
	if err != nil {
		return managed.Null, fmt.Errorf("domain: %w", err)
	}
	var n []byte
	if !nonce.IsNull() {
		if n, err = b.FromManagedBytes(env, nonce); err != nil {
			return managed.Null, fmt.Errorf("nonce: %w", err)
		}
	}

	var envelope []byte
	err = b.lib.do(func(c domain.Crypto, random io.Reader) error {
		if n == nil {
			if n, err = crypto.NewNonce(random); err != nil {
				return err
			}
		}
		envelope, err = c.EncryptForMultiple(msgs, rcpts, sk, dom, n)
		return err
	})
	if err != nil {
		return managed.Null, err
	}
	return b.ToManagedBytes(env, envelope)
}

// DecryptForMultipleSimple opens the ciphertext in encoded addressed to the
// holder of secretKey. The result is null when nothing authenticates.
func (b *Bridge) DecryptForMultipleSimple(env Env, encoded, secretKey, senderPub, domainStr managed.Ref) (managed.Ref, error) {
	enc, err := b.FromManagedBytes(env, encoded)
	if err != nil {
		return managed.Null, fmt.Errorf("envelope: %w", err)
	}
	sk, err := b.FromManagedBytes(env, secretKey)
	if err != nil {
		return managed.Null, fmt.Errorf("secret key: %w", err)
	}
	defer memzero.Zero(sk)
	pub, err := b.FromManagedBytes(env, senderPub)
	if err != nil {
		return managed.Null, fmt.Errorf("sender key: %w", err)
	}
	dom, err := env.StringValue(domainStr)
	if err != nil {
		return managed.Null, fmt.Errorf("domain: %w", err)
	}

	var (
		plain []byte
		ok    bool
	)
	err = b.lib.do(func(c domain.Crypto, _ io.Reader) error {
		plain, ok, err = c.DecryptForMultiple(enc, sk, pub, dom)
		return err
	})
	if err != nil {
		return managed.Null, err
	}
	if !ok {
		return managed.Null, nil
	}
	return b.ToManagedBytes(env, plain)
}

func (b *Bridge) byteArrays(env Env, arr managed.Ref, n int) ([][]byte, error) {
	out := make([][]byte, n)
	for i := range out {
		el, err := env.ObjectArrayElement(arr, i)
		if err != nil {
			return nil, err
		}
		if out[i], err = b.FromManagedBytes(env, el); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
	}
	return out, nil
}
