package host

import (
	"encoding/hex"

	"sessionbridge/internal/domain"
	"sessionbridge/internal/managed"
)

// ParseCommunityURL splits fullURL into a community reference.
func (h *Host) ParseCommunityURL(fullURL string) (domain.CommunityReference, error) {
	f := h.frame()
	defer f.free()

	arg := f.str(fullURL)
	if f.err != nil {
		return domain.CommunityReference{}, f.err
	}
	triple := f.track(h.bridge.ParseCommunityURL(h.heap, arg))
	if f.err != nil {
		return domain.CommunityReference{}, f.err
	}

	var (
		ref domain.CommunityReference
		err error
	)
	if ref.BaseURL, err = h.textField(triple, "first"); err != nil {
		return domain.CommunityReference{}, err
	}
	if ref.Room, err = h.textField(triple, "second"); err != nil {
		return domain.CommunityReference{}, err
	}
	pk, err := h.heap.ObjectField(triple, "third")
	if err != nil {
		return domain.CommunityReference{}, err
	}
	raw, err := h.bridge.FromManagedBytes(h.heap, pk)
	if err != nil {
		return domain.CommunityReference{}, err
	}
	ref.PubkeyHex = hex.EncodeToString(raw)
	return ref, nil
}

// CommunityFullURL validates ref and renders its full URL.
func (h *Host) CommunityFullURL(ref domain.CommunityReference) (string, error) {
	f := h.frame()
	defer f.free()

	base := f.str(ref.BaseURL)
	room := f.str(ref.Room)
	pk := f.str(ref.PubkeyHex)
	if f.err != nil {
		return "", f.err
	}
	info := f.track(h.bridge.NewCommunity(h.heap, base, room, pk))
	if f.err != nil {
		return "", f.err
	}
	full := f.track(h.bridge.CommunityFullURL(h.heap, info))
	if f.err != nil {
		return "", f.err
	}
	return h.heap.StringValue(full)
}

// SessionID validates s through the managed SessionId factory. ok is false
// for a string of the wrong length.
func (h *Host) SessionID(s string) (id domain.SessionID, ok bool, err error) {
	f := h.frame()
	defer f.free()

	obj := f.track(h.bridge.ToManagedSessionID(h.heap, s))
	if f.err != nil || obj.IsNull() {
		return "", false, f.err
	}
	id, err = h.bridge.SessionIDFromManaged(h.heap, obj)
	return id, err == nil, err
}

func (h *Host) textField(obj managed.Ref, name string) (string, error) {
	r, err := h.heap.ObjectField(obj, name)
	if err != nil {
		return "", err
	}
	return h.heap.StringValue(r)
}
