package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseCents(t *testing.T) {
	tests := []struct {
		in   string
		want Cents
	}{
		{"18.5", 1850},
		{"18.50", 1850},
		{"7", 700},
		{"0.10", 10},
		{"0.07", 7},
		{" 2.5 ", 250},
		{"19.99", 1999},
	}
	for _, tt := range tests {
		got, err := ParseCents(tt.in)
		if err != nil {
			t.Errorf("ParseCents(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCents(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseCents_Rejects(t *testing.T) {
	for _, in := range []string{"", "1.234", "-3", "1.", ".5", "abc", "1,50", "$5", "1e2"} {
		if _, err := ParseCents(in); !errors.Is(err, ErrInvalidPrice) {
			t.Errorf("ParseCents(%q): expected ErrInvalidPrice, got %v", in, err)
		}
	}
}

func TestCents_JSONAndString(t *testing.T) {
	b, err := json.Marshal(struct {
		Price Cents `json:"price"`
	}{Price: 1805})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"price":18.05}` {
		t.Errorf("got %s", b)
	}
	if got := Cents(5).String(); got != "$0.05" {
		t.Errorf("String() = %q", got)
	}
}
