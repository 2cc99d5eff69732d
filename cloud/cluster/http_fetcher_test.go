package cluster

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPFetcher(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "# node monitors")
		fmt.Fprintln(w, "host1:20502")
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "host2:20502")
	}))
	defer server.Close()

	nodes, err := NewHTTPFetcher(server.URL).Fetch()
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 2 || nodes[0].Id() != "host1:20502" || nodes[1].Id() != "host2:20502" {
		t.Errorf("unexpected nodes: %v", nodes)
	}
}

func TestHTTPFetcherBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", 503)
	}))
	defer server.Close()

	if _, err := NewHTTPFetcher(server.URL).Fetch(); err == nil {
		t.Error("expected an error for a non-200 response")
	}
}
