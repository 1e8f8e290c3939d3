package update

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseResponseFormats(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"github release", `{"tag_name":"v0.5.0","name":"v0.5.0"}`, "0.5.0"},
		{"version document", `{"version":"1.2.3"}`, "1.2.3"},
		{"plain text", "v2.0.0\n", "2.0.0"},
		{"bare number", "0.4.2", "0.4.2"},
	}
	for _, tc := range cases {
		got, err := ParseResponse([]byte(tc.body))
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: got %q want %q", tc.name, got, tc.want)
		}
	}

	if _, err := ParseResponse([]byte("   ")); err == nil {
		t.Fatalf("empty response should error")
	}
}

func TestIsNewer(t *testing.T) {
	cases := []struct {
		latest, current string
		want            bool
	}{
		{"0.5.0", "0.4.1", true},
		{"0.4.1", "0.4.1", false},
		{"0.4.0", "0.4.1", false},
		{"1.0.0", "0.9.9", true},
		{"0.4.10", "0.4.9", true}, // numeric, not lexicographic
		{"v0.5.0", "0.4.1", true},
		{"0.4.1.1", "0.4.1", true},
		{"0.4", "0.4.1", false},
	}
	for _, tc := range cases {
		if got := IsNewer(tc.latest, tc.current); got != tc.want {
			t.Fatalf("IsNewer(%q, %q) = %v, want %v", tc.latest, tc.current, got, tc.want)
		}
	}
}

func TestCheckAgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tag_name":"v9.9.9"}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	got, err := Check(ctx, srv.URL)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if got != "9.9.9" {
		t.Fatalf("got %q", got)
	}
}

func TestCheckHonorsContextTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := Check(ctx, srv.URL); err == nil {
		t.Fatalf("expected the check to fail once the context expires")
	}
}
