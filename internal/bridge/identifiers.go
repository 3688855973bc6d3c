package bridge

import (
	"sessionbridge/internal/domain"
	"sessionbridge/internal/managed"
)

const sessionIDFactory = "from"

// ToManagedSessionID builds a managed SessionId through its factory. A
// string of the wrong length yields null rather than an error; any other
// rejection by the factory is returned.
func (b *Bridge) ToManagedSessionID(env Env, hex string) (ref managed.Ref, err error) {
	if len(hex) != domain.SessionIDLength {
		b.log.Debug("session id rejected",
			"length", len(hex),
			"error", ErrMalformedSessionID,
		)
		return managed.Null, nil
	}
	l := &locals{env: env}
	defer l.dropOnError(&err)

	str, err := l.keep(env.NewString(hex))
	if err != nil {
		return managed.Null, err
	}
	return env.CallStatic(managed.ClassSessionID, sessionIDFactory, str)
}

// SessionIDFromManaged returns the hex form of a managed SessionId. The
// managed factory has already validated it.
func (b *Bridge) SessionIDFromManaged(env Env, obj managed.Ref) (domain.SessionID, error) {
	s, err := b.stringField(env, obj, "hexString")
	if err != nil {
		return "", err
	}
	return domain.SessionID(s), nil
}

// ToManagedTriple builds a managed Triple of already converted values.
func (b *Bridge) ToManagedTriple(env Env, first, second, third managed.Ref) (managed.Ref, error) {
	return env.NewObject(managed.ClassTriple, first, second, third)
}

// ParseCommunityURL splits a managed full URL string into a Triple of base
// URL, room and the server public key bytes.
func (b *Bridge) ParseCommunityURL(env Env, fullURL managed.Ref) (ref managed.Ref, err error) {
	text, err := env.StringValue(fullURL)
	if err != nil {
		return managed.Null, err
	}
	base, room, pubkey, err := b.urls.ParseFullURL(text)
	if err != nil {
		return managed.Null, err
	}

	l := &locals{env: env}
	defer l.dropOnError(&err)

	baseRef, err := l.keep(env.NewString(base))
	if err != nil {
		return managed.Null, err
	}
	roomRef, err := l.keep(env.NewString(room))
	if err != nil {
		return managed.Null, err
	}
	pkRef, err := l.keep(b.ToManagedBytes(env, pubkey))
	if err != nil {
		return managed.Null, err
	}
	return b.ToManagedTriple(env, baseRef, roomRef, pkRef)
}

// CommunityFullURL renders a managed BaseCommunityInfo as its full URL.
func (b *Bridge) CommunityFullURL(env Env, obj managed.Ref) (managed.Ref, error) {
	c, err := b.CommunityFromManaged(env, obj)
	if err != nil {
		return managed.Null, err
	}
	return env.NewString(b.urls.FullURL(c))
}

// NewCommunity builds a managed BaseCommunityInfo from its parts, with the
// base URL in canonical form.
func (b *Bridge) NewCommunity(env Env, baseURL, room, pubkeyHex managed.Ref) (managed.Ref, error) {
	var parts [3]string
	for i, r := range []managed.Ref{baseURL, room, pubkeyHex} {
		s, err := env.StringValue(r)
		if err != nil {
			return managed.Null, err
		}
		parts[i] = s
	}
	c, err := b.urls.New(parts[0], parts[1], parts[2])
	if err != nil {
		return managed.Null, err
	}
	return b.ToManagedCommunity(env, c)
}
