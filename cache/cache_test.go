package cache

import (
	"testing"
	"time"

	"github.com/use-agent/scrapo/models"
)

func TestCache_SetGet(t *testing.T) {
	c := New(10, time.Hour)
	rec := models.ContactRecord{Target: "x.com", Emails: []string{"a@x.com"}}
	c.Set("x.com", rec)

	got, ok := c.Get("x.com")
	if !ok {
		t.Fatal("expected a hit")
	}
	if got.Target != "x.com" || len(got.Emails) != 1 {
		t.Errorf("got %+v", got)
	}
}

func TestCache_Miss(t *testing.T) {
	c := New(10, time.Hour)
	if _, ok := c.Get("absent.com"); ok {
		t.Error("expected a miss")
	}
}

func TestCache_ExpiredEntryIsMiss(t *testing.T) {
	c := New(10, time.Nanosecond)
	c.Set("x.com", models.ContactRecord{Target: "x.com"})
	time.Sleep(time.Millisecond)
	if _, ok := c.Get("x.com"); ok {
		t.Error("expired entry must not be returned")
	}
}

func TestCache_CapacityEviction(t *testing.T) {
	c := New(2, time.Hour)
	c.Set("a.com", models.ContactRecord{Target: "a.com"})
	c.Set("b.com", models.ContactRecord{Target: "b.com"})
	c.Set("c.com", models.ContactRecord{Target: "c.com"})

	c.mu.RLock()
	size := len(c.store)
	c.mu.RUnlock()
	if size > 2 {
		t.Errorf("cache exceeded capacity: %d entries", size)
	}
}
