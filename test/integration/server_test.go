package integration

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"groupchat/internal/server"
	"groupchat/test/testhelpers"
)

// TestHealthEndpointIntegration tests the health endpoint with the actual
// server wiring.
func TestHealthEndpointIntegration(t *testing.T) {
	ts, _ := testhelpers.StartChatServer(t)

	resp := testhelpers.MakeRequest(t, http.MethodGet, ts.URL+"/")
	defer resp.Body.Close()

	testhelpers.AssertStatusCode(t, resp, http.StatusOK)
	testhelpers.AssertContentType(t, resp, "text/plain")
}

// TestServerTimeouts tests that CreateServer applies the production timeout
// configuration.
func TestServerTimeouts(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/slow", func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	})

	srv := server.CreateServer(":0", mux)
	if srv.ReadTimeout != 15*time.Second {
		t.Errorf("Expected read timeout 15s, got %s", srv.ReadTimeout)
	}
	if srv.WriteTimeout != 15*time.Second {
		t.Errorf("Expected write timeout 15s, got %s", srv.WriteTimeout)
	}
	if srv.IdleTimeout != 60*time.Second {
		t.Errorf("Expected idle timeout 60s, got %s", srv.IdleTimeout)
	}

	testServer := httptest.NewUnstartedServer(mux)
	testServer.Config = srv
	testServer.Start()
	defer testServer.Close()

	resp := testhelpers.MakeRequest(t, http.MethodGet, testServer.URL+"/slow")
	defer resp.Body.Close()
	testhelpers.AssertStatusCode(t, resp, http.StatusOK)
}

// TestUnknownRouteFallsThroughToHealth documents that the root handler also
// answers unmatched paths, mirroring the production mux.
func TestUnknownRouteFallsThroughToHealth(t *testing.T) {
	ts, _ := testhelpers.StartChatServer(t)

	resp := testhelpers.MakeRequest(t, http.MethodGet, ts.URL+"/no-such-page")
	defer resp.Body.Close()

	testhelpers.AssertStatusCode(t, resp, http.StatusOK)
}
