package managed

import (
	"encoding/hex"
	"fmt"
)

// Classes the boundary constructs and inspects.
const (
	ClassLong              Class = "lang.Long"
	ClassTriple            Class = "lang.Triple"
	ClassUserPic           Class = "session.util.UserPic"
	ClassBaseCommunityInfo Class = "session.util.BaseCommunityInfo"
	ClassExpiryMode        Class = "session.util.ExpiryMode"
	ClassExpiryNone        Class = "session.util.ExpiryMode.NONE"
	ClassExpiryAfterSend   Class = "session.util.ExpiryMode.AfterSend"
	ClassExpiryAfterRead   Class = "session.util.ExpiryMode.AfterRead"
	ClassGroupMember       Class = "session.util.GroupMember"
	ClassGroupDisplayInfo  Class = "session.util.GroupDisplayInfo"
	ClassKeyPair           Class = "session.util.KeyPair"
	ClassSwarmAuth         Class = "session.GroupKeysConfig.SwarmAuth"
	ClassConfig            Class = "session.Config"
	ClassConfigBase        Class = "session.ConfigBase"
	ClassConfigSig         Class = "session.ConfigSig"
	ClassSessionID         Class = "session.SessionId"
)

// Catalog returns the class definitions in dependency order.
func Catalog() []ClassDef {
	str := func(name string) Field { return Field{Name: name, Type: ClassString} }
	bytes := func(name string) Field { return Field{Name: name, Type: ClassByteArray} }
	flag := func(name string) Field { return Field{Name: name, Kind: KindBool} }

	return []ClassDef{
		{Name: ClassLong, Fields: []Field{{Name: "value", Kind: KindLong}}},
		{Name: ClassTriple, Fields: []Field{
			{Name: "first", Nullable: true},
			{Name: "second", Nullable: true},
			{Name: "third", Nullable: true},
		}},
		{Name: ClassUserPic, Fields: []Field{str("url"), bytes("key")}},
		{Name: ClassBaseCommunityInfo, Fields: []Field{str("baseUrl"), str("room"), str("pubKeyHex")}},
		{Name: ClassExpiryMode, Abstract: true, Fields: []Field{{Name: "expirySeconds", Kind: KindLong}}},
		{Name: ClassExpiryNone, Super: ClassExpiryMode, Singleton: true},
		{Name: ClassExpiryAfterSend, Super: ClassExpiryMode},
		{Name: ClassExpiryAfterRead, Super: ClassExpiryMode},
		{Name: ClassGroupMember, Fields: []Field{
			str("sessionId"),
			str("name"),
			{Name: "profilePicture", Type: ClassUserPic},
			flag("inviteFailed"),
			flag("invitePending"),
			flag("admin"),
			flag("promotionFailed"),
			flag("promotionPending"),
		}},
		{Name: ClassSessionID, Fields: []Field{str("hexString")}},
		{Name: ClassGroupDisplayInfo, Fields: []Field{
			{Name: "id", Type: ClassSessionID},
			{Name: "created", Type: ClassLong, Nullable: true},
			{Name: "expiryTimer", Type: ClassLong, Nullable: true},
			str("name"),
			{Name: "description", Type: ClassString, Nullable: true},
			flag("destroyed"),
			{Name: "profilePic", Type: ClassUserPic},
		}},
		{Name: ClassKeyPair, Fields: []Field{bytes("pubKey"), bytes("secretKey")}},
		{Name: ClassSwarmAuth, Fields: []Field{str("subaccount"), str("subaccountSig"), str("signature")}},
		{Name: ClassConfig, Abstract: true, Fields: []Field{{Name: "pointer", Kind: KindLong}}},
		{Name: ClassConfigBase, Super: ClassConfig},
		{Name: ClassConfigSig, Super: ClassConfig},
	}
}

// sessionIDFrom is SessionId.from(String). It rejects anything that is not
// 66 hex characters.
func sessionIDFrom(h *Heap, args ...any) (Ref, error) {
	if len(args) != 1 {
		return Null, fmt.Errorf("%w: SessionId.from takes 1, got %d", ErrArgumentCount, len(args))
	}
	r, ok := args[0].(Ref)
	if !ok {
		return Null, fmt.Errorf("%w: want Ref, got %T", ErrIllegalArgument, args[0])
	}
	s, err := h.StringValue(r)
	if err != nil {
		return Null, err
	}
	if len(s) != 66 {
		return Null, fmt.Errorf("%w: session id length %d", ErrIllegalArgument, len(s))
	}
	if _, err := hex.DecodeString(s); err != nil {
		return Null, fmt.Errorf("%w: session id: %v", ErrIllegalArgument, err)
	}
	return h.NewObject(ClassSessionID, r)
}
