package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestValueUnmarshalString(t *testing.T) {
	var v Value
	if err := json.Unmarshal([]byte(`"Exploring AI in Healthcare"`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v.List {
		t.Error("expected text value, got list")
	}
	if v.Text != "Exploring AI in Healthcare" {
		t.Errorf("text = %q", v.Text)
	}
}

func TestValueUnmarshalList(t *testing.T) {
	var v Value
	if err := json.Unmarshal([]byte(`["one","two","three"]`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !v.List {
		t.Error("expected list value")
	}
	if !reflect.DeepEqual(v.Lines, []string{"one", "two", "three"}) {
		t.Errorf("lines = %v", v.Lines)
	}
}

func TestValueUnmarshalRejectsObject(t *testing.T) {
	var v Value
	if err := json.Unmarshal([]byte(`{"oops":1}`), &v); err == nil {
		t.Error("expected error for object value")
	}
}

func TestValueMarshalRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"text", TextValue("hello"), `"hello"`},
		{"list", ListValue("a", "b"), `["a","b"]`},
		{"empty list", ListValue(), `[]`},
		{"empty text", TextValue(""), `""`},
	}
	for _, tt := range tests {
		got, err := json.Marshal(tt.v)
		if err != nil {
			t.Fatalf("%s: marshal: %v", tt.name, err)
		}
		if string(got) != tt.want {
			t.Errorf("%s: got %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestPlaceholderResolvedImage(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://images.pexels.com/photos/1/original.jpg", true},
		{"http://example.com/a.png", true},
		{"no images found for: a doctor using a tablet", false},
		{"image search failed: connection refused", false},
		{"", false},
	}
	for _, tt := range tests {
		p := Placeholder{Name: "Picture Placeholder 2", ImageURL: tt.url}
		url, ok := p.ResolvedImage()
		if ok != tt.want {
			t.Errorf("ResolvedImage(%q): ok = %v, want %v", tt.url, ok, tt.want)
		}
		if ok && url != tt.url {
			t.Errorf("ResolvedImage(%q): url = %q", tt.url, url)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusPending, false},
		{StatusInProgress, false},
		{StatusCompleted, true},
		{StatusFailed, true},
	}
	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.want {
			t.Errorf("%s.Terminal() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestSlideContentJSON(t *testing.T) {
	// Content rows store the placeholder array exactly as the tool contract
	// shapes it, plus the post-generation id and resolved image URL.
	raw := []byte(`[
		{"id":"abc","name":"Title 1","value":"Hello"},
		{"name":"Picture Placeholder 2","value":"a sunrise","image_url":"https://x/y.jpg"}
	]`)

	var content []Placeholder
	if err := json.Unmarshal(raw, &content); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(content) != 2 {
		t.Fatalf("len = %d", len(content))
	}
	if content[0].Value.Text != "Hello" {
		t.Errorf("first value = %+v", content[0].Value)
	}
	if _, ok := content[1].ResolvedImage(); !ok {
		t.Error("second placeholder should have a resolved image")
	}
}
