package community

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"sessionbridge/internal/domain"
)

// PubkeyLength is the size of a community server's X25519 public key.
const PubkeyLength = 32

var (
	// ErrInvalidURL is returned when a base or full URL does not fit the grammar.
	ErrInvalidURL = errors.New("invalid community url")
	// ErrInvalidRoom is returned for an empty or malformed room token.
	ErrInvalidRoom = errors.New("invalid community room")
	// ErrInvalidPubkey is returned when the server public key cannot be decoded.
	ErrInvalidPubkey = errors.New("invalid community public key")
)

var roomPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
}

// New builds a reference from its parts. The base URL is canonicalised and
// the public key re-encoded as lower-case hex.
func New(baseURL, room, pubkeyHex string) (domain.CommunityReference, error) {
	base, err := CanonicalBaseURL(baseURL)
	if err != nil {
		return domain.CommunityReference{}, err
	}
	if !roomPattern.MatchString(room) {
		return domain.CommunityReference{}, fmt.Errorf("%w: %q", ErrInvalidRoom, room)
	}
	pk, err := hex.DecodeString(pubkeyHex)
	if err != nil || len(pk) != PubkeyLength {
		return domain.CommunityReference{}, fmt.Errorf("%w: want %d hex chars", ErrInvalidPubkey, 2*PubkeyLength)
	}
	return domain.CommunityReference{
		BaseURL:   base,
		Room:      room,
		PubkeyHex: hex.EncodeToString(pk),
	}, nil
}

// ParseFullURL splits a full community URL into its canonical base URL,
// its room and the raw server public key.
func ParseFullURL(fullURL string) (baseURL, room string, pubkey []byte, err error) {
	u, err := url.Parse(strings.TrimSpace(fullURL))
	if err != nil {
		return "", "", nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	baseURL, err = canonicalBase(u)
	if err != nil {
		return "", "", nil, err
	}

	path := strings.TrimPrefix(u.Path, "/")
	path = strings.TrimPrefix(path, "r/")
	path = strings.TrimSuffix(path, "/")
	if !roomPattern.MatchString(path) {
		return "", "", nil, fmt.Errorf("%w: %q", ErrInvalidRoom, path)
	}

	raw, err := queryParam(u.RawQuery, "public_key")
	if err != nil {
		return "", "", nil, err
	}
	pubkey, err = decodePubkey(raw)
	if err != nil {
		return "", "", nil, err
	}
	return baseURL, path, pubkey, nil
}

// FullURL renders ref as a full community URL.
func FullURL(ref domain.CommunityReference) string {
	return ref.BaseURL + "/" + ref.Room + "?public_key=" + ref.PubkeyHex
}

// CanonicalBaseURL canonicalises a community server base URL.
func CanonicalBaseURL(baseURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if p := strings.TrimSuffix(u.Path, "/"); p != "" {
		return "", fmt.Errorf("%w: base url has path %q", ErrInvalidURL, u.Path)
	}
	return canonicalBase(u)
}

func canonicalBase(u *url.URL) (string, error) {
	scheme := strings.ToLower(u.Scheme)
	def, ok := defaultPorts[scheme]
	if !ok {
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	if port := u.Port(); port != "" && port != def {
		host += ":" + port
	}
	return scheme + "://" + host, nil
}

// queryParam returns the first value of key in rawQuery. Values are path
// unescaped so a literal '+' in a base64 key survives.
func queryParam(rawQuery, key string) (string, error) {
	for _, pair := range strings.Split(rawQuery, "&") {
		k, v, _ := strings.Cut(pair, "=")
		if k != key {
			continue
		}
		val, err := url.PathUnescape(v)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidPubkey, err)
		}
		return val, nil
	}
	return "", nil
}

func decodePubkey(s string) ([]byte, error) {
	var (
		pk  []byte
		err error
	)
	switch len(s) {
	case 2 * PubkeyLength:
		pk, err = hex.DecodeString(s)
	case 43:
		pk, err = base64.RawStdEncoding.DecodeString(s)
	case 44:
		pk, err = base64.StdEncoding.DecodeString(s)
	default:
		return nil, fmt.Errorf("%w: unexpected length %d", ErrInvalidPubkey, len(s))
	}
	if err != nil || len(pk) != PubkeyLength {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPubkey, s)
	}
	return pk, nil
}

// URLs adapts the package functions to domain.CommunityURLs.
type URLs struct{}

// New implements domain.CommunityURLs.
func (URLs) New(baseURL, room, pubkeyHex string) (domain.CommunityReference, error) {
	return New(baseURL, room, pubkeyHex)
}

// ParseFullURL implements domain.CommunityURLs.
func (URLs) ParseFullURL(fullURL string) (string, string, []byte, error) {
	return ParseFullURL(fullURL)
}

// FullURL implements domain.CommunityURLs.
func (URLs) FullURL(ref domain.CommunityReference) string {
	return FullURL(ref)
}

// Compile-time assertion that URLs implements domain.CommunityURLs.
var _ domain.CommunityURLs = URLs{}
