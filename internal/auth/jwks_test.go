package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func keySetResponse(t *testing.T, kid string, pub *rsa.PublicKey) []byte {
	t.Helper()
	doc := keySetDocument{
		Keys: []providerKey{
			{
				Kty: "RSA",
				Kid: kid,
				Alg: "RS256",
				N:   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
				E:   base64.RawURLEncoding.EncodeToString([]byte{1, 0, 1}),
			},
			// A broken entry must not poison the rest of the set
			{Kty: "RSA", Kid: "broken", N: "!!not-base64!!", E: "AQAB"},
			{Kty: "EC", Kid: "ignored"},
		},
	}
	body, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal key set: %v", err)
	}
	return body
}

// TestJWKS_FetchAndGet tests that the key set loads from the provider and
// that malformed or non-RSA entries are skipped
func TestJWKS_FetchAndGet(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(keySetResponse(t, "rotation-1", &key.PublicKey))
	}))
	defer srv.Close()

	jwks, err := NewJWKS(srv.URL, time.Hour)
	if err != nil {
		t.Fatalf("Failed to load key set: %v", err)
	}
	defer jwks.Close()

	pub, err := jwks.Get("rotation-1")
	if err != nil {
		t.Fatalf("Expected key for known kid, got error: %v", err)
	}
	if pub.N.Cmp(key.PublicKey.N) != 0 {
		t.Error("Returned key does not match the published modulus")
	}

	if _, err := jwks.Get("broken"); err == nil {
		t.Error("Expected the malformed entry to be absent from the set")
	}
	if _, err := jwks.Get("ignored"); err == nil {
		t.Error("Expected the non-RSA entry to be absent from the set")
	}
}

// TestJWKS_RefetchOnUnknownKid tests that a rotated key is picked up by the
// on-miss refetch without waiting for the scheduled refresh
func TestJWKS_RefetchOnUnknownKid(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}

	kid := "rotation-1"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(keySetResponse(t, kid, &key.PublicKey))
	}))
	defer srv.Close()

	jwks, err := NewJWKS(srv.URL, time.Hour)
	if err != nil {
		t.Fatalf("Failed to load key set: %v", err)
	}
	defer jwks.Close()

	// Provider rotates
	kid = "rotation-2"

	if _, err := jwks.Get("rotation-2"); err != nil {
		t.Errorf("Expected on-miss refetch to find the rotated key, got: %v", err)
	}
}

// TestJWKS_ErrorStatus tests that a failing provider blocks startup
func TestJWKS_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := NewJWKS(srv.URL, time.Hour); err == nil {
		t.Error("Expected error when the provider returns a non-200 status")
	}
}
