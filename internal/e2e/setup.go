//go:build integration

package e2e

import (
	"crypto/rsa"
	"database/sql"
	"net/http/httptest"
	"testing"

	"github.com/ecolink-tn/ecolink-api/internal/auth"
	httpserver "github.com/ecolink-tn/ecolink-api/internal/http"
	"github.com/ecolink-tn/ecolink-api/internal/testutil"
)

// TestServer represents a complete E2E test environment
type TestServer struct {
	Server        *httptest.Server
	DB            *sql.DB
	MockPublisher *testutil.MockPublisher
	Verifier      *auth.Verifier
	PrivateKey    *rsa.PrivateKey
}

// SetupE2ETest creates a complete test environment:
// real PostgreSQL database, real HTTP server with all routes, in-memory
// event publisher and a test JWT verifier plus signing key.
func SetupE2ETest(t *testing.T) *TestServer {
	t.Helper()

	db := testutil.SetupTestDB(t)

	mockPublisher := testutil.NewMockPublisher()

	perms, err := auth.LoadPermissions("../../permissions.yml")
	if err != nil {
		t.Fatalf("Failed to load permissions: %v", err)
	}

	verifier, privateKey := testutil.CreateTestVerifier(t)

	router := httpserver.SetupRouter(db, mockPublisher, verifier, perms, nil)

	server := httptest.NewServer(router)

	return &TestServer{
		Server:        server,
		DB:            db,
		MockPublisher: mockPublisher,
		Verifier:      verifier,
		PrivateKey:    privateKey,
	}
}

// Cleanup cleans up all test resources
func (ts *TestServer) Cleanup(t *testing.T) {
	t.Helper()

	ts.Server.Close()
	testutil.CleanupTestDB(t, ts.DB)
	ts.DB.Close()
}

// GenerateReporterToken generates a REPORTER token for this test server
func (ts *TestServer) GenerateReporterToken(t *testing.T) string {
	t.Helper()
	return testutil.GenerateReporterToken(t, ts.PrivateKey)
}

// GenerateOrganizationToken generates an ORGANIZATION token for this test server
func (ts *TestServer) GenerateOrganizationToken(t *testing.T) string {
	t.Helper()
	return testutil.GenerateOrganizationToken(t, ts.PrivateKey)
}

// NewClient creates a new HTTP test client for this server with the given token
func (ts *TestServer) NewClient(token string) *testutil.HTTPTestClient {
	return testutil.NewHTTPTestClient(ts.Server.URL, token)
}
