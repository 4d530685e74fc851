// internal/signer/signer.go
//
// Tamper-evident URLs.
//
// A signed URL is its canonical form followed by one reserved parameter:
//
//	/images?dir=N&dist=4100&rk=2024-01-01&status=GUESSED&sig=<base64url MAC>
//
// The canonical form is the escaped path plus the query re-encoded with
// url.Values.Encode (keys sorted, values kept in order). The MAC is
// HMAC-SHA256 over that string with a key derived from the server secret.
// Verification accepts a URL only if its query is already canonical, so
// every byte of the covered query is pinned by the signature.

package signer

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

// Param is the reserved query parameter that carries the signature.
const Param = "sig"

const keyInfo = "farguessr url signature"

// ErrSignature is the only error Verify returns, whichever check failed.
var ErrSignature = errors.New("invalid signature")

var b64 = base64.RawURLEncoding.Strict()

// Signer signs and verifies URLs. It is read-only after New and safe for
// concurrent use.
type Signer struct {
	key []byte
}

// New derives a signing key from secret. Every instance of a deployment must
// be given the same secret or their signatures will not verify on each other.
func New(secret string) (*Signer, error) {
	if secret == "" {
		return nil, errors.New("signer: empty secret")
	}
	key := make([]byte, sha256.Size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("signer: derive key: %w", err)
	}
	return &Signer{key: key}, nil
}

// Sign returns rawURL in canonical form with a signature appended.
// Any existing signature parameter is replaced.
func (s *Signer) Sign(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("signer: parse url: %w", err)
	}
	q := u.Query()
	q.Del(Param)
	u.RawQuery = q.Encode()
	u.Fragment = ""

	mac, err := s.mac(u.EscapedPath(), u.RawQuery)
	if err != nil {
		return "", err
	}
	if u.RawQuery != "" {
		u.RawQuery += "&"
	}
	u.RawQuery += Param + "=" + mac
	return u.String(), nil
}

// Verify checks rawURL and returns it with the signature removed.
func (s *Signer) Verify(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", ErrSignature
	}
	covered, sig, ok := splitSignature(u.RawQuery)
	if !ok {
		return "", ErrSignature
	}
	q, err := url.ParseQuery(covered)
	if err != nil || q.Has(Param) || q.Encode() != covered {
		return "", ErrSignature
	}
	raw, err := b64.DecodeString(sig)
	if err != nil {
		return "", ErrSignature
	}
	if err := jwt.SigningMethodHS256.Verify(signingString(u.EscapedPath(), covered), raw, s.key); err != nil {
		return "", ErrSignature
	}
	u.RawQuery = covered
	u.Fragment = ""
	return u.String(), nil
}

// VerifyQuery is Verify for a request that arrived as path + raw query.
func (s *Signer) VerifyQuery(path, rawQuery string) (url.Values, error) {
	out, err := s.Verify((&url.URL{Path: path, RawQuery: rawQuery}).String())
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(out)
	if err != nil {
		return nil, ErrSignature
	}
	return u.Query(), nil
}

func (s *Signer) mac(path, canonicalQuery string) (string, error) {
	sum, err := jwt.SigningMethodHS256.Sign(signingString(path, canonicalQuery), s.key)
	if err != nil {
		return "", fmt.Errorf("signer: sign: %w", err)
	}
	return b64.EncodeToString(sum), nil
}

func signingString(path, canonicalQuery string) string {
	return path + "?" + canonicalQuery
}

// splitSignature separates the trailing sig parameter from the covered query.
func splitSignature(rawQuery string) (covered, sig string, ok bool) {
	prefix := Param + "="
	if strings.HasPrefix(rawQuery, prefix) {
		return "", rawQuery[len(prefix):], !strings.Contains(rawQuery, "&")
	}
	i := strings.LastIndex(rawQuery, "&"+prefix)
	if i < 0 {
		return "", "", false
	}
	sig = rawQuery[i+len(prefix)+1:]
	if strings.Contains(sig, "&") {
		return "", "", false
	}
	return rawQuery[:i], sig, true
}
