package keyring

import (
	"errors"
	"testing"

	"github.com/zalando/go-keyring"

	"github.com/yllada/nordvpn-indicator/common"
)

func TestStoreAndGet(t *testing.T) {
	keyring.MockInit()
	defer Delete()

	if Exists() {
		t.Fatal("Exists() = true before Store()")
	}

	if err := Store("e9f2ab"); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if !Exists() {
		t.Error("Exists() = false after Store()")
	}

	got, err := Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "e9f2ab" {
		t.Errorf("Get() = %v, want %v", got, "e9f2ab")
	}
}

func TestStoreEmpty(t *testing.T) {
	keyring.MockInit()

	err := Store("")
	if !errors.Is(err, common.ErrUserInputInvalid) {
		t.Errorf("Store(\"\") error = %v, want ErrUserInputInvalid", err)
	}
}

func TestGetMissing(t *testing.T) {
	keyring.MockInit()

	_, err := Get()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	keyring.MockInit()

	if err := Delete(); err != nil {
		t.Errorf("Delete() on empty keyring error = %v", err)
	}

	if err := Store("token"); err != nil {
		t.Fatal(err)
	}
	if err := Delete(); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if Exists() {
		t.Error("Exists() = true after Delete()")
	}
}

func TestSessionFallback(t *testing.T) {
	keyring.MockInitWithError(errors.New("no secret service"))
	defer Delete()

	err := Store("session")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Store() error = %v, want ErrUnavailable", err)
	}

	got, err := Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "session" {
		t.Errorf("Get() = %v, want session", got)
	}
}
