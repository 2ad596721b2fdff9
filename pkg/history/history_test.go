package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/matzehuels/onepercent/pkg/errors"
)

func TestMemoryStore_RecordGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)
	defer s.Close(ctx)

	e := &Entry{Value: 42, Color: "#00ACE4", Formats: []string{"svg"}}
	if err := s.Record(ctx, e); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if e.ID == "" || e.CreatedAt.IsZero() {
		t.Fatalf("Record did not fill ID and time: %+v", e)
	}
	got, err := s.Get(ctx, e.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Value != 42 || got.ID != e.ID {
		t.Errorf("Get = %+v", got)
	}
}

func TestMemoryStore_NotFound(t *testing.T) {
	_, err := NewMemoryStore(1).Get(context.Background(), "nope")
	if err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("code = %q", errors.GetCode(err))
	}
}

func TestMemoryStore_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(3)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if err := s.Record(ctx, &Entry{ID: fmt.Sprint(i), CreatedAt: base.Add(time.Duration(i) * time.Minute)}); err != nil {
			t.Fatal(err)
		}
	}

	all, _ := s.List(ctx, 0)
	if len(all) != 3 {
		t.Fatalf("List(0) len = %d, want capacity 3", len(all))
	}
	for i, want := range []string{"4", "3", "2"} {
		if all[i].ID != want {
			t.Errorf("List[%d] = %s, want %s", i, all[i].ID, want)
		}
	}
	two, _ := s.List(ctx, 2)
	if len(two) != 2 || two[0].ID != "4" {
		t.Errorf("List(2) = %+v", two)
	}
	if _, err := s.Get(ctx, "0"); err != ErrNotFound {
		t.Error("evicted entry still present")
	}
}

func TestNewID_Unique(t *testing.T) {
	if NewID() == NewID() {
		t.Error("NewID returned duplicates")
	}
}

func TestNewMongoStore_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	if _, err := NewMongoStore(ctx, MongoOptions{URI: "mongodb://127.0.0.1:1/?connectTimeoutMS=100&serverSelectionTimeoutMS=100"}); err == nil {
		t.Fatal("NewMongoStore succeeded against a closed port")
	}
}
