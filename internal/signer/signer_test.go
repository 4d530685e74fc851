package signer

import (
	"errors"
	"net/url"
	"strings"
	"testing"
)

func newSigner(t *testing.T, secret string) *Signer {
	t.Helper()
	s, err := New(secret)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

var canonicalURLs = []string{
	"https://farguessr.example/images?dir=N&dist=4100&rk=2024-01-01&status=GUESSED",
	"https://farguessr.example/frames?mode=RANDOM&rk=0f8e3c2a&status=STARTED",
	"https://farguessr.example/share?msg=Invalid+input.+Guess+again%21&status=INVALID",
	"https://farguessr.example/frames",
	"/images?status=INITIAL",
}

func TestSignVerifyRoundTrip(t *testing.T) {
	s := newSigner(t, "secret")
	for _, u := range canonicalURLs {
		signed, err := s.Sign(u)
		if err != nil {
			t.Fatalf("Sign(%q): %v", u, err)
		}
		if !strings.Contains(signed, Param+"=") {
			t.Fatalf("signed url %q has no signature", signed)
		}
		got, err := s.Verify(signed)
		if err != nil {
			t.Fatalf("Verify(%q): %v", signed, err)
		}
		if got != u {
			t.Errorf("Verify returned %q, want %q", got, u)
		}
	}
}

func TestSignCanonicalisesOrder(t *testing.T) {
	s := newSigner(t, "secret")
	a, err := s.Sign("/images?status=STARTED&rk=abc")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	b, err := s.Sign("/images?rk=abc&status=STARTED&sig=stale")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if a != b {
		t.Errorf("equivalent urls signed differently:\n%s\n%s", a, b)
	}
}

func TestVerifyDetectsEverySingleCharacterMutation(t *testing.T) {
	s := newSigner(t, "secret")
	for _, raw := range canonicalURLs {
		signed, err := s.Sign(raw)
		if err != nil {
			t.Fatalf("Sign: %v", err)
		}
		u, _ := url.Parse(signed)
		query := u.RawQuery
		for i := range query {
			repl := byte('x')
			if query[i] == 'x' {
				repl = 'y'
			}
			mutated := *u
			mutated.RawQuery = query[:i] + string(repl) + query[i+1:]
			if _, err := s.Verify(mutated.String()); !errors.Is(err, ErrSignature) {
				t.Errorf("mutation at %d of %q verified (err = %v)", i, query, err)
			}
		}
	}
}

func TestVerifyRejects(t *testing.T) {
	s := newSigner(t, "secret")
	signed, err := s.Sign("https://farguessr.example/images?dist=4000&dir=N&rk=2024-01-01&status=GUESSED")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	u, _ := url.Parse(signed)

	tests := []struct {
		name string
		url  string
	}{
		{"appended parameter", signed + "&extra=1"},
		{"parameter inserted before signature", strings.Replace(signed, "&sig=", "&zz=1&sig=", 1)},
		{"truncated signature", signed[:len(signed)-4]},
		{"missing signature", strings.Split(signed, "&sig=")[0]},
		{"empty signature", strings.Split(signed, "&sig=")[0] + "&sig="},
		{"duplicate signature", signed + "&sig=abc"},
		{"other path", strings.Replace(signed, "/images", "/share", 1)},
		{"non-canonical order", "https://farguessr.example/images?status=GUESSED&rk=2024-01-01&dist=4000&dir=N&sig=" + u.Query().Get(Param)},
		{"garbage", "%%%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Verify(tt.url); !errors.Is(err, ErrSignature) {
				t.Errorf("Verify(%q) err = %v, want ErrSignature", tt.url, err)
			}
		})
	}
}

func TestVerifyWrongKey(t *testing.T) {
	a := newSigner(t, "secret-a")
	b := newSigner(t, "secret-b")
	signed, err := a.Sign("/frames?status=STARTED&rk=abc")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := b.Verify(signed); !errors.Is(err, ErrSignature) {
		t.Errorf("foreign key verified: %v", err)
	}
	// Same secret on another instance must agree.
	if _, err := newSigner(t, "secret-a").Verify(signed); err != nil {
		t.Errorf("same secret failed to verify: %v", err)
	}
}

func TestVerifyQuery(t *testing.T) {
	s := newSigner(t, "secret")
	signed, err := s.Sign("http://localhost:5175/share?dir=SW&dist=120&rk=abc")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	u, _ := url.Parse(signed)

	q, err := s.VerifyQuery(u.Path, u.RawQuery)
	if err != nil {
		t.Fatalf("VerifyQuery: %v", err)
	}
	if q.Get("dir") != "SW" || q.Get("dist") != "120" || q.Has(Param) {
		t.Errorf("unexpected values %v", q)
	}
	if _, err := s.VerifyQuery("/images", u.RawQuery); !errors.Is(err, ErrSignature) {
		t.Errorf("signature for /share accepted on /images")
	}
}

func TestNewRejectsEmptySecret(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatal("expected error for empty secret")
	}
}
