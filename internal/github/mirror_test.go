package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testMirror(url string) *Mirror {
	mirror := NewMirror("secret", "owner/data", "owner", "main")
	mirror.apiUrl = url
	return mirror
}

func TestPushExistingFile(t *testing.T) {

	var gotPut putRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "token secret" {
			t.Errorf("missing auth header")
		}
		switch r.Method {
		case http.MethodGet:
			if !strings.Contains(r.URL.RawQuery, "ref=main") {
				t.Errorf("revision fetch should pin the branch, got %s", r.URL.RawQuery)
			}
			json.NewEncoder(w).Encode(contentsResponse{Sha: "abc123"})
		case http.MethodPut:
			if err := json.NewDecoder(r.Body).Decode(&gotPut); err != nil {
				t.Errorf("could not decode put body: %v", err)
			}
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer server.Close()

	mirror := testMirror(server.URL)
	err := mirror.Push(context.Background(), "reminders.json", []byte(`[]`), "Update reminders")
	if err != nil {
		t.Fatalf("Push(): %v", err)
	}
	if gotPut.Sha != "abc123" {
		t.Fatalf("push should be keyed to the fetched revision, got %q", gotPut.Sha)
	}
	if gotPut.Branch != "main" {
		t.Fatalf("push should target the configured branch, got %q", gotPut.Branch)
	}
	content, err := base64.StdEncoding.DecodeString(gotPut.Content)
	if err != nil || string(content) != "[]" {
		t.Fatalf("push content mangled: %q, %v", gotPut.Content, err)
	}
}

func TestPushCreatesMissingFile(t *testing.T) {

	var gotPut putRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			json.NewDecoder(r.Body).Decode(&gotPut)
			w.WriteHeader(http.StatusCreated)
		}
	}))
	defer server.Close()

	mirror := testMirror(server.URL)
	if err := mirror.Push(context.Background(), "faq.json", []byte(`[]`), "Create faq"); err != nil {
		t.Fatalf("Push() of a new file: %v", err)
	}
	if gotPut.Sha != "" {
		t.Fatalf("creating a new file must not send a sha, got %q", gotPut.Sha)
	}
}

func TestPushConflictFails(t *testing.T) {

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(contentsResponse{Sha: "stale"})
		case http.MethodPut:
			// Concurrent external edit moved the file
			w.WriteHeader(http.StatusConflict)
		}
	}))
	defer server.Close()

	mirror := testMirror(server.URL)
	if err := mirror.Push(context.Background(), "faq.json", []byte(`[]`), "Update faq"); err == nil {
		t.Fatalf("Push() against a stale revision should fail")
	}
}

func TestPushDisabled(t *testing.T) {

	mirror := NewMirror("", "", "", "")
	if mirror.Enabled() {
		t.Fatalf("mirror without credentials should be disabled")
	}
	if err := mirror.Push(context.Background(), "faq.json", []byte(`[]`), "x"); err == nil {
		t.Fatalf("Push() on a disabled mirror should fail")
	}
}
