package bridge

import (
	"fmt"

	"sessionbridge/internal/managed"
)

// ToManagedBytes copies buf into a new managed byte array of exactly
// len(buf) bytes.
func (b *Bridge) ToManagedBytes(env Env, buf []byte) (managed.Ref, error) {
	arr, err := env.NewByteArray(len(buf))
	if err != nil {
		return managed.Null, err
	}
	if len(buf) == 0 {
		return arr, nil
	}
	if err := env.SetByteArrayRegion(arr, 0, buf); err != nil {
		env.Delete(arr)
		return managed.Null, fmt.Errorf("%w: %v", ErrInvalidBuffer, err)
	}
	return arr, nil
}

// FromManagedBytes copies the contents of a managed byte array. The
// borrowed view is released on every path.
func (b *Bridge) FromManagedBytes(env Env, arr managed.Ref) ([]byte, error) {
	n, err := env.ArrayLength(arr)
	if err != nil {
		return nil, err
	}
	view, err := env.BorrowByteArray(arr)
	if err != nil {
		return nil, err
	}
	defer view.Release()
	return copyView(view, n)
}

// FromManagedString returns the UTF-8 bytes of a managed string.
func (b *Bridge) FromManagedString(env Env, str managed.Ref) ([]byte, error) {
	view, err := env.BorrowString(str)
	if err != nil {
		return nil, err
	}
	defer view.Release()
	return copyView(view, view.Len())
}

func copyView(view *managed.View, n int) ([]byte, error) {
	if n < 0 || n > view.Len() {
		return nil, fmt.Errorf("%w: length %d exceeds storage of %d", ErrInvalidBuffer, n, view.Len())
	}
	out := make([]byte, n)
	copy(out, view.Bytes()[:n])
	return out, nil
}
