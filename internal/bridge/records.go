package bridge

import (
	"fmt"

	"sessionbridge/internal/domain"
	"sessionbridge/internal/managed"
)

// ToManagedUserPic builds a managed UserPic.
func (b *Bridge) ToManagedUserPic(env Env, pic domain.ProfilePicture) (ref managed.Ref, err error) {
	l := &locals{env: env}
	defer l.dropOnError(&err)

	url, err := l.keep(env.NewString(pic.URL))
	if err != nil {
		return managed.Null, err
	}
	key, err := l.keep(b.ToManagedBytes(env, pic.Key))
	if err != nil {
		return managed.Null, err
	}
	return env.NewObject(managed.ClassUserPic, url, key)
}

// UserPicFromManaged reads a managed UserPic.
func (b *Bridge) UserPicFromManaged(env Env, obj managed.Ref) (domain.ProfilePicture, error) {
	url, err := b.stringField(env, obj, "url")
	if err != nil {
		return domain.ProfilePicture{}, err
	}
	key, err := b.bytesField(env, obj, "key")
	if err != nil {
		return domain.ProfilePicture{}, err
	}
	return domain.ProfilePicture{URL: url, Key: key}, nil
}

// ToManagedCommunity builds a managed BaseCommunityInfo.
func (b *Bridge) ToManagedCommunity(env Env, c domain.CommunityReference) (ref managed.Ref, err error) {
	l := &locals{env: env}
	defer l.dropOnError(&err)

	var parts [3]managed.Ref
	for i, s := range []string{c.BaseURL, c.Room, c.PubkeyHex} {
		if parts[i], err = l.keep(env.NewString(s)); err != nil {
			return managed.Null, err
		}
	}
	return env.NewObject(managed.ClassBaseCommunityInfo, parts[0], parts[1], parts[2])
}

// CommunityFromManaged reads a managed BaseCommunityInfo.
func (b *Bridge) CommunityFromManaged(env Env, obj managed.Ref) (domain.CommunityReference, error) {
	var out domain.CommunityReference
	var err error
	if out.BaseURL, err = b.stringField(env, obj, "baseUrl"); err != nil {
		return domain.CommunityReference{}, err
	}
	if out.Room, err = b.stringField(env, obj, "room"); err != nil {
		return domain.CommunityReference{}, err
	}
	if out.PubkeyHex, err = b.stringField(env, obj, "pubKeyHex"); err != nil {
		return domain.CommunityReference{}, err
	}
	return out, nil
}

// ToManagedGroupMember builds a managed GroupMember, flattening each
// status into its pending and failed flags. A malformed session id is
// rejected before anything is allocated.
func (b *Bridge) ToManagedGroupMember(env Env, m domain.GroupMember) (ref managed.Ref, err error) {
	if !m.SessionID.Valid() {
		return managed.Null, fmt.Errorf("sessionId: %w", ErrMalformedSessionID)
	}
	l := &locals{env: env}
	defer l.dropOnError(&err)

	id, err := l.keep(env.NewString(m.SessionID.String()))
	if err != nil {
		return managed.Null, err
	}
	name, err := l.keep(env.NewString(m.Name))
	if err != nil {
		return managed.Null, err
	}
	pic, err := l.keep(b.ToManagedUserPic(env, m.ProfilePicture))
	if err != nil {
		return managed.Null, err
	}
	invitePending, inviteFailed := m.Invite.Flags()
	promotionPending, promotionFailed := m.Promotion.Flags()

	return env.NewObject(managed.ClassGroupMember,
		id, name, pic,
		inviteFailed, invitePending,
		m.Admin,
		promotionFailed, promotionPending,
	)
}

// GroupMemberFromManaged reads a managed GroupMember. The session id and
// name are copied verbatim; a session id that is not 66 hex characters is
// rejected.
func (b *Bridge) GroupMemberFromManaged(env Env, obj managed.Ref) (domain.GroupMember, error) {
	var m domain.GroupMember

	id, err := b.stringField(env, obj, "sessionId")
	if err != nil {
		return domain.GroupMember{}, err
	}
	m.SessionID = domain.SessionID(id)
	if !m.SessionID.Valid() {
		return domain.GroupMember{}, fmt.Errorf("sessionId: %w", ErrMalformedSessionID)
	}
	if m.Name, err = b.stringField(env, obj, "name"); err != nil {
		return domain.GroupMember{}, err
	}

	picRef, err := requiredField(env, obj, "profilePicture")
	if err != nil {
		return domain.GroupMember{}, err
	}
	if m.ProfilePicture, err = b.UserPicFromManaged(env, picRef); err != nil {
		return domain.GroupMember{}, fmt.Errorf("profilePicture: %w", err)
	}

	if m.Admin, err = env.BoolField(obj, "admin"); err != nil {
		return domain.GroupMember{}, err
	}
	if m.Invite, err = statusFromManaged(env, obj, "invitePending", "inviteFailed"); err != nil {
		return domain.GroupMember{}, err
	}
	if m.Promotion, err = statusFromManaged(env, obj, "promotionPending", "promotionFailed"); err != nil {
		return domain.GroupMember{}, err
	}
	return m, nil
}

// ToManagedSwarmAuth builds a managed SwarmAuth.
func (b *Bridge) ToManagedSwarmAuth(env Env, a domain.SwarmAuth) (ref managed.Ref, err error) {
	l := &locals{env: env}
	defer l.dropOnError(&err)

	var parts [3]managed.Ref
	for i, s := range []string{a.Subaccount, a.SubaccountSig, a.Signature} {
		if parts[i], err = l.keep(env.NewString(s)); err != nil {
			return managed.Null, err
		}
	}
	return env.NewObject(managed.ClassSwarmAuth, parts[0], parts[1], parts[2])
}

// ToManagedKeyPair builds a managed KeyPair.
func (b *Bridge) ToManagedKeyPair(env Env, kp domain.KeyPair) (ref managed.Ref, err error) {
	l := &locals{env: env}
	defer l.dropOnError(&err)

	pk, err := l.keep(b.ToManagedBytes(env, kp.Public.Slice()))
	if err != nil {
		return managed.Null, err
	}
	sk, err := l.keep(b.ToManagedBytes(env, kp.Secret.Slice()))
	if err != nil {
		return managed.Null, err
	}
	return env.NewObject(managed.ClassKeyPair, pk, sk)
}

// KeyPairFromManaged reads a managed KeyPair.
func (b *Bridge) KeyPairFromManaged(env Env, obj managed.Ref) (domain.KeyPair, error) {
	var kp domain.KeyPair
	pk, err := b.bytesField(env, obj, "pubKey")
	if err != nil {
		return domain.KeyPair{}, err
	}
	sk, err := b.bytesField(env, obj, "secretKey")
	if err != nil {
		return domain.KeyPair{}, err
	}
	if len(pk) != len(kp.Public) || len(sk) != len(kp.Secret) {
		return domain.KeyPair{}, fmt.Errorf("%w: key pair of %d and %d bytes", ErrInvalidBuffer, len(pk), len(sk))
	}
	copy(kp.Public[:], pk)
	copy(kp.Secret[:], sk)
	return kp, nil
}

// ToManagedGroupDisplayInfo builds a managed GroupDisplayInfo. The id must
// be a well-formed session id.
func (b *Bridge) ToManagedGroupDisplayInfo(env Env, info domain.GroupDisplayInfo) (ref managed.Ref, err error) {
	l := &locals{env: env}
	defer l.dropOnError(&err)

	id, err := l.keep(b.ToManagedSessionID(env, info.ID.String()))
	if err != nil {
		return managed.Null, err
	}
	if id.IsNull() {
		return managed.Null, fmt.Errorf("group id: %w", ErrMalformedSessionID)
	}
	created, err := l.keep(b.OptionalInt64(env, info.Created))
	if err != nil {
		return managed.Null, err
	}
	timer, err := l.keep(b.OptionalInt64(env, info.ExpiryTimer))
	if err != nil {
		return managed.Null, err
	}
	name, err := l.keep(env.NewString(info.Name))
	if err != nil {
		return managed.Null, err
	}
	desc, err := l.keep(b.OptionalText(env, info.Description))
	if err != nil {
		return managed.Null, err
	}
	pic, err := l.keep(b.ToManagedUserPic(env, info.ProfilePicture))
	if err != nil {
		return managed.Null, err
	}
	return env.NewObject(managed.ClassGroupDisplayInfo,
		id, created, timer, name, desc, info.Destroyed, pic,
	)
}

// ToManagedStringList returns ss, in order, as a managed object array.
func (b *Bridge) ToManagedStringList(env Env, ss []string) (ref managed.Ref, err error) {
	l := &locals{env: env}
	defer l.dropOnError(&err)

	elems := make([]managed.Ref, len(ss))
	for i, s := range ss {
		if elems[i], err = l.keep(env.NewString(s)); err != nil {
			return managed.Null, err
		}
	}
	return env.NewObjectArray(elems)
}

// requiredField reads a reference field that must not be null.
func requiredField(env Env, obj managed.Ref, name string) (managed.Ref, error) {
	r, err := env.ObjectField(obj, name)
	if err != nil {
		return managed.Null, err
	}
	if r.IsNull() {
		return managed.Null, fmt.Errorf("%s: %w", name, ErrMissingField)
	}
	return r, nil
}

func (b *Bridge) stringField(env Env, obj managed.Ref, name string) (string, error) {
	r, err := requiredField(env, obj, name)
	if err != nil {
		return "", err
	}
	return env.StringValue(r)
}

func (b *Bridge) bytesField(env Env, obj managed.Ref, name string) ([]byte, error) {
	r, err := requiredField(env, obj, name)
	if err != nil {
		return nil, err
	}
	out, err := b.FromManagedBytes(env, r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}
