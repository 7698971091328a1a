package auth

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"sync"
	"time"
)

// providerKey is one entry of the identity provider's published key set.
// Only RSA keys are considered; the verifier rejects non-RS256 tokens anyway.
type providerKey struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Alg string `json:"alg"`
	N   string `json:"n"`
	E   string `json:"e"`
}

type keySetDocument struct {
	Keys []providerKey `json:"keys"`
}

// JWKS holds the provider's RSA public keys indexed by kid, refreshed in the
// background so key rotation at the provider does not interrupt verification.
type JWKS struct {
	url    string
	client *http.Client

	mu     sync.RWMutex
	keys   map[string]*rsa.PublicKey
	ticker *time.Ticker
	quit   chan struct{}
}

// NewJWKS fetches the key set once, failing fast on an unreachable provider,
// then keeps it fresh every refreshInterval. Pass 0 for the 15m default.
func NewJWKS(url string, refreshInterval time.Duration) (*JWKS, error) {
	if refreshInterval <= 0 {
		refreshInterval = 15 * time.Minute
	}
	j := &JWKS{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		keys:   map[string]*rsa.PublicKey{},
		ticker: time.NewTicker(refreshInterval),
		quit:   make(chan struct{}),
	}
	if err := j.refresh(); err != nil {
		return nil, err
	}
	go j.loop()
	return j, nil
}

func (j *JWKS) loop() {
	for {
		select {
		case <-j.ticker.C:
			if err := j.refresh(); err != nil {
				log.Printf("[ERROR] JWKS refresh failed, keeping cached keys: %v", err)
			}
		case <-j.quit:
			return
		}
	}
}

// Close stops the background refresh.
func (j *JWKS) Close() {
	close(j.quit)
	j.ticker.Stop()
}

func (j *JWKS) refresh() error {
	resp, err := j.httpClient().Get(j.url)
	if err != nil {
		return fmt.Errorf("failed to fetch JWKS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("JWKS endpoint returned status %d", resp.StatusCode)
	}

	var doc keySetDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return fmt.Errorf("failed to decode JWKS: %w", err)
	}

	// A malformed entry skips that key rather than discarding the whole set.
	fresh := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, k := range doc.Keys {
		if k.Kty != "RSA" {
			continue
		}
		pub, err := k.publicKey()
		if err != nil {
			log.Printf("[ERROR] JWKS: skipping key %s: %v", k.Kid, err)
			continue
		}
		fresh[k.Kid] = pub
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	j.keys = fresh
	return nil
}

func (j *JWKS) httpClient() *http.Client {
	if j.client != nil {
		return j.client
	}
	return http.DefaultClient
}

// Get returns the public key for a kid, refetching once on a miss so a
// freshly rotated key is picked up before its next scheduled refresh.
func (j *JWKS) Get(kid string) (*rsa.PublicKey, error) {
	j.mu.RLock()
	pub := j.keys[kid]
	j.mu.RUnlock()
	if pub != nil {
		return pub, nil
	}

	if err := j.refresh(); err != nil {
		return nil, err
	}

	j.mu.RLock()
	defer j.mu.RUnlock()
	pub = j.keys[kid]
	if pub == nil {
		return nil, errors.New("jwks: key not found")
	}
	return pub, nil
}

func (k providerKey) publicKey() (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, fmt.Errorf("invalid modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, fmt.Errorf("invalid exponent: %w", err)
	}

	exponent := 0
	for _, b := range eBytes {
		exponent = (exponent << 8) + int(b)
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: exponent,
	}, nil
}
