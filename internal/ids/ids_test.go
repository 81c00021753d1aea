package ids

import (
	"strings"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	t.Run("format", func(t *testing.T) {
		id := New(PrefixNote)
		parts := strings.Split(id, "_")
		if len(parts) != 3 {
			t.Fatalf("expected 3 parts, got %q", id)
		}
		if parts[0] != "note" {
			t.Errorf("expected prefix note, got %s", parts[0])
		}
		if len(parts[2]) != 12 {
			t.Errorf("expected 12 random chars, got %q", parts[2])
		}
	})

	t.Run("unique_within_same_millisecond", func(t *testing.T) {
		frozen := time.UnixMilli(1700000000000)
		now = func() time.Time { return frozen }
		defer func() { now = time.Now }()

		seen := make(map[string]struct{})
		for i := 0; i < 10000; i++ {
			id := New(PrefixUser)
			if _, dup := seen[id]; dup {
				t.Fatalf("duplicate id %s after %d calls", id, i)
			}
			seen[id] = struct{}{}
		}
	})
}
