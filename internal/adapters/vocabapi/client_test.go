package vocabapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/0xcro3dile/wordlookup-go/internal/domain/ports"
)

func TestClient_LookUp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/vocab" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type: %s", ct)
		}

		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["input_text"] != "The [[cat]] sat." {
			t.Errorf("unexpected body: %v", body)
		}
		w.Write([]byte("cat: a small domesticated animal"))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	resp, err := client.LookUp(context.Background(), "The [[cat]] sat.")

	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if resp != "cat: a small domesticated animal" {
		t.Errorf("unexpected response: %s", resp)
	}
}

func TestClient_GenerateStory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/story" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["words"] != "apple, bee" {
			t.Errorf("unexpected body: %v", body)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"story": "A bee ate an apple."})
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", time.Second)
	resp, err := client.GenerateStory(context.Background(), "apple, bee")

	if err != nil {
		t.Fatalf("story failed: %v", err)
	}
	if resp != "A bee ate an apple." {
		t.Errorf("unexpected response: %s", resp)
	}
}

func TestClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.LookUp(context.Background(), "cat")

	if err == nil {
		t.Fatal("should error on 500")
	}
	if !errors.Is(err, ports.ErrTransport) {
		t.Errorf("expected transport error, got %v", err)
	}
}

func TestClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(url, time.Second)
	_, err := client.GenerateStory(context.Background(), "cat")

	if !errors.Is(err, ports.ErrTransport) {
		t.Errorf("expected transport error, got %v", err)
	}
}

func TestClient_DefaultTimeout(t *testing.T) {
	client := NewClient("http://localhost:5000", 0)
	if client.client.Timeout != defaultTimeout {
		t.Errorf("expected default timeout, got %v", client.client.Timeout)
	}
}

func TestResponseText(t *testing.T) {
	tests := []struct {
		name, body, want string
	}{
		{"plain text", "  hello world \n", "hello world"},
		{"json string", `"hello"`, "hello"},
		{"response field", `{"response":"r","text":"t"}`, "r"},
		{"text field", `{"text":"t"}`, "t"},
		{"no known field", `{"other":"x"}`, `{"other":"x"}`},
		{"non string field", `{"result":42}`, `{"result":42}`},
		{"array", `["a","b"]`, `["a","b"]`},
		{"markdown", "# Title\n\n- item", "# Title\n\n- item"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResponseText([]byte(tt.body)); got != tt.want {
				t.Errorf("ResponseText() = %q, want %q", got, tt.want)
			}
		})
	}
}
