package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := NewClient(Config{BaseURL: srv.URL, APIToken: "test-token"})
	return client, srv
}

func TestClient_CreateUser_WrappedEnvelope(t *testing.T) {
	var gotAuth, gotIdem string
	var gotBody map[string]any

	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/users" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotIdem = r.Header.Get("Idempotency-Key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"id":"prov_1","email":"a@x.com","paymentIdentifier":"pay_1","publicKey":"pk_1"}}`))
	})
	defer srv.Close()

	user, err := client.CreateUser(context.Background(), "a@x.com", "a", "User")
	if err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	if user.ID != "prov_1" || user.PaymentIdentifier != "pay_1" || user.PublicKey != "pk_1" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if gotAuth != "Bearer test-token" {
		t.Fatalf("missing bearer credential: %q", gotAuth)
	}
	if gotIdem == "" {
		t.Fatalf("write calls must carry an idempotency key")
	}
	if gotBody["email"] != "a@x.com" || gotBody["firstName"] != "a" || gotBody["lastName"] != "User" {
		t.Fatalf("unexpected request body: %+v", gotBody)
	}
}

func TestClient_CreateUser_BareObject(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"prov_2","paymentIdentifier":"pay_2"}`))
	})
	defer srv.Close()

	user, err := client.CreateUser(context.Background(), "b@x.com", "b", "User")
	if err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	if user.ID != "prov_2" || user.PaymentIdentifier != "pay_2" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestClient_CreateUser_MissingFields(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"email":"c@x.com"}}`))
	})
	defer srv.Close()

	// An incomplete user is returned as-is; deciding whether the wallet is
	// usable belongs to the identity service.
	user, err := client.CreateUser(context.Background(), "c@x.com", "c", "User")
	if err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	if user.ID != "" || user.PaymentIdentifier != "" {
		t.Fatalf("expected empty wallet fields, got %+v", user)
	}
}

func TestClient_Non2xxClassified(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid api token"}`))
	})
	defer srv.Close()

	err := client.EnableGas(context.Background(), "prov_1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Body, "invalid api token") {
		t.Fatalf("expected provider body preserved, got %q", apiErr.Body)
	}
}

func TestClient_NonJSONSuccessBody(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("gas enabled"))
	})
	defer srv.Close()

	// A 2xx plain-text body is not an error.
	if err := client.EnableGas(context.Background(), "prov_1"); err != nil {
		t.Fatalf("plain-text 2xx should succeed: %v", err)
	}
}

func TestClient_GetBalance(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/prov_1/balance" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Idempotency-Key") != "" {
			t.Fatalf("reads must not carry an idempotency key")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tokens":[{"name":"ZAR","balance":"150.75"},{"name":"USDC","balance":"3"}]}`))
	})
	defer srv.Close()

	tokens, err := client.GetBalance(context.Background(), "prov_1")
	if err != nil {
		t.Fatalf("get balance failed: %v", err)
	}
	if len(tokens) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(tokens))
	}
	if tokens[0].Name != "ZAR" || tokens[0].Balance != "150.75" {
		t.Fatalf("unexpected first entry: %+v", tokens[0])
	}
}

func TestClient_GetBalance_NoTokensField(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	})
	defer srv.Close()

	tokens, err := client.GetBalance(context.Background(), "prov_1")
	if err != nil {
		t.Fatalf("get balance failed: %v", err)
	}
	if len(tokens) != 0 {
		t.Fatalf("expected empty listing, got %+v", tokens)
	}
}

func TestClient_Mint(t *testing.T) {
	var gotBody map[string]any
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/mint" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	})
	defer srv.Close()

	if err := client.Mint(context.Background(), 100, "pay_1", "test mint"); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if gotBody["transactionAmount"] != float64(100) {
		t.Fatalf("unexpected amount: %v", gotBody["transactionAmount"])
	}
	if gotBody["transactionRecipient"] != "pay_1" {
		t.Fatalf("unexpected recipient: %v", gotBody["transactionRecipient"])
	}
	if gotBody["transactionNotes"] != "test mint" {
		t.Fatalf("unexpected note: %v", gotBody["transactionNotes"])
	}
}
