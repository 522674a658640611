package snapshots_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/authpages/internal/app/store/snapshots"
	"github.com/dalemusser/authpages/internal/domain/models"
)

func TestMemoryStore_SaveGet(t *testing.T) {
	s := snapshots.NewMemory(time.Minute)
	ctx := context.Background()

	kc := models.KcContext{PageID: models.PageLogin, Realm: models.Realm{DisplayName: "Acme"}}
	snap, err := s.Save(ctx, kc, "10.0.0.1")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if snap.ID == "" {
		t.Fatal("expected generated id")
	}
	if !snap.ExpiresAt.After(snap.CreatedAt) {
		t.Errorf("expiry %v not after creation %v", snap.ExpiresAt, snap.CreatedAt)
	}

	got, err := s.Get(ctx, snap.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Context.Realm.DisplayName != "Acme" || got.ClientIP != "10.0.0.1" {
		t.Errorf("got %+v", got)
	}
	if s.ItemCount() != 1 {
		t.Errorf("ItemCount = %d", s.ItemCount())
	}
}

func TestMemoryStore_UniqueIDs(t *testing.T) {
	s := snapshots.NewMemory(time.Minute)
	a, _ := s.Save(context.Background(), models.KcContext{PageID: "a"}, "")
	b, _ := s.Save(context.Background(), models.KcContext{PageID: "b"}, "")
	if a.ID == b.ID {
		t.Fatalf("duplicate id %q", a.ID)
	}
}

func TestMemoryStore_NotFound(t *testing.T) {
	s := snapshots.NewMemory(time.Minute)
	if _, err := s.Get(context.Background(), "missing"); !errors.Is(err, snapshots.ErrNotFound) {
		t.Errorf("err = %v", err)
	}
}

func TestMemoryStore_Expired(t *testing.T) {
	s := snapshots.NewMemory(10 * time.Millisecond)
	snap, _ := s.Save(context.Background(), models.KcContext{PageID: models.PageLogin}, "")
	time.Sleep(25 * time.Millisecond)
	if _, err := s.Get(context.Background(), snap.ID); !errors.Is(err, snapshots.ErrNotFound) {
		t.Errorf("err = %v", err)
	}
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	s := snapshots.NewMemory(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Save(ctx, models.KcContext{}, ""); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v", err)
	}
}
