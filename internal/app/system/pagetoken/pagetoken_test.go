package pagetoken_test

import (
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/authpages/internal/app/system/pagetoken"
)

var key = []byte("0123456789abcdef0123456789abcdef")

func TestRoundTrip(t *testing.T) {
	c, err := pagetoken.New(key, time.Hour)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tok, err := c.Encode("3f1c2a")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	id, err := c.Decode(tok)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if id != "3f1c2a" {
		t.Errorf("id = %q", id)
	}
}

func TestDecode_Tampered(t *testing.T) {
	c, _ := pagetoken.New(key, time.Hour)
	tok, _ := c.Encode("abc")

	other, _ := pagetoken.New([]byte("ffffffffffffffffffffffffffffffff"), time.Hour)
	if _, err := other.Decode(tok); !errors.Is(err, pagetoken.ErrInvalid) {
		t.Errorf("foreign key: err = %v", err)
	}
	if _, err := c.Decode(tok + "x"); !errors.Is(err, pagetoken.ErrInvalid) {
		t.Errorf("tampered: err = %v", err)
	}
	if _, err := c.Decode(""); !errors.Is(err, pagetoken.ErrInvalid) {
		t.Errorf("empty: err = %v", err)
	}
}

func TestNew_ShortKey(t *testing.T) {
	if _, err := pagetoken.New([]byte("short"), time.Hour); err == nil {
		t.Fatal("expected error for short key")
	}
}
