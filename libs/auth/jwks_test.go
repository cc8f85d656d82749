package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func jwksDocument(t *testing.T, kids ...string) (map[string]*rsa.PublicKey, []byte) {
	t.Helper()
	pubs := map[string]*rsa.PublicKey{}
	doc := jwks{}
	for _, kid := range kids {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			t.Fatalf("generate key: %v", err)
		}
		pubs[kid] = &key.PublicKey
		doc.Keys = append(doc.Keys, jwk{
			Kty: "RSA",
			Kid: kid,
			Use: "sig",
			Alg: "RS256",
			N:   base64.RawURLEncoding.EncodeToString(key.PublicKey.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.PublicKey.E)).Bytes()),
		})
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal jwks: %v", err)
	}
	return pubs, raw
}

func TestJWKSClientGet(t *testing.T) {
	pubs, raw := jwksDocument(t, "key-1")
	fetches := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		_, _ = w.Write(raw)
	}))
	defer srv.Close()

	c := NewJWKSClient(srv.URL, time.Minute)
	got, err := c.Get("key-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.N.Cmp(pubs["key-1"].N) != 0 {
		t.Fatal("returned modulus does not match the served key")
	}
	if _, err := c.Get("key-1"); err != nil {
		t.Fatalf("cached Get failed: %v", err)
	}
	if fetches != 1 {
		t.Fatalf("expected a single fetch for a fresh cache, got %d", fetches)
	}
}

func TestJWKSClientPicksUpRotation(t *testing.T) {
	_, raw1 := jwksDocument(t, "key-1")
	pubs2, raw2 := jwksDocument(t, "key-2")
	raw := raw1
	fetches := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		_, _ = w.Write(raw)
	}))
	defer srv.Close()

	c := NewJWKSClient(srv.URL, time.Hour)
	c.missBackoff = 0
	if _, err := c.Get("key-1"); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	// The signer rotates mid-TTL; an unknown kid forces an early refetch.
	raw = raw2
	got, err := c.Get("key-2")
	if err != nil {
		t.Fatalf("Get after rotation failed: %v", err)
	}
	if got.N.Cmp(pubs2["key-2"].N) != 0 {
		t.Fatal("rotated key does not match")
	}
	if fetches != 2 {
		t.Fatalf("expected 2 fetches, got %d", fetches)
	}
}

func TestJWKSClientUnknownKidIsRateLimited(t *testing.T) {
	_, raw := jwksDocument(t, "key-1")
	fetches := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		_, _ = w.Write(raw)
	}))
	defer srv.Close()

	c := NewJWKSClient(srv.URL, time.Hour)
	if _, err := c.Get("key-1"); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	// Bad tokens inside the backoff window must not hammer the endpoint.
	for i := 0; i < 3; i++ {
		if _, err := c.Get("no-such-kid"); !errors.Is(err, ErrKeyNotFound) {
			t.Fatalf("expected ErrKeyNotFound, got %v", err)
		}
	}
	if fetches != 1 {
		t.Fatalf("unknown kids should stay on the cache, got %d fetches", fetches)
	}
}

func TestJWKSClientServesStaleOnOutage(t *testing.T) {
	pubs, raw := jwksDocument(t, "key-1")
	healthy := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write(raw)
	}))
	defer srv.Close()

	c := NewJWKSClient(srv.URL, time.Nanosecond)
	if _, err := c.Get("key-1"); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	healthy = false
	time.Sleep(time.Millisecond)
	got, err := c.Get("key-1")
	if err != nil {
		t.Fatalf("stale Get failed during outage: %v", err)
	}
	if got.N.Cmp(pubs["key-1"].N) != 0 {
		t.Fatal("stale key does not match")
	}
}
