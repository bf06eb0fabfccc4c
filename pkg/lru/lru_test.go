package lru

import (
	"testing"
	"time"

	"github.com/AdrianWangs/go-hstring/pkg/hstring"
)

type word struct {
	s hstring.String
}

func (w word) Len() int { return w.s.Len() }

func newWord(s string) word { return word{s: hstring.FromString(s)} }

func TestGet(t *testing.T) {
	c := New[word](0, nil)
	c.Add("k1", newWord("value1"), 0)
	if v, ok := c.Get("k1"); !ok || v.s.String() != "value1" {
		t.Fatalf("cache hit k1=value1 failed")
	}
	if _, ok := c.Get("k2"); ok {
		t.Fatalf("cache miss k2 failed")
	}
}

func TestRemoveOldest(t *testing.T) {
	k1, k2, k3 := "key1", "key2", "k3"
	v1, v2, v3 := "value1", "value2", "v3"
	limit := int64(len(k1 + k2 + v1 + v2))

	var evicted []string
	c := New[word](limit, func(key string, _ word) {
		evicted = append(evicted, key)
	})
	c.Add(k1, newWord(v1), 0)
	c.Add(k2, newWord(v2), 0)
	c.Add(k3, newWord(v3), 0)

	if _, ok := c.Get(k1); ok || c.Len() != 2 {
		t.Fatalf("removeOldest key1 failed, len=%d", c.Len())
	}
	if len(evicted) != 1 || evicted[0] != k1 {
		t.Fatalf("OnEvicted saw %v", evicted)
	}
}

func TestRecentlyUsedSurvives(t *testing.T) {
	c := New[word](int64(len("aAbB")), nil)
	c.Add("a", newWord("A"), 0)
	c.Add("b", newWord("B"), 0)
	c.Get("a")
	c.Add("c", newWord("C"), 0)

	if _, ok := c.Get("a"); !ok {
		t.Fatal("recently used key was evicted")
	}
	if _, ok := c.Get("b"); ok {
		t.Fatal("least recently used key survived")
	}
}

func TestReplaceAdjustsBytes(t *testing.T) {
	c := New[word](0, nil)
	c.Add("k", newWord("short"), 0)
	c.Add("k", newWord("a considerably longer value"), 0)
	if got, want := c.Bytes(), int64(len("k")+len("a considerably longer value")); got != want {
		t.Fatalf("bytes %d, want %d", got, want)
	}
	if c.Len() != 1 {
		t.Fatalf("replace left %d entries", c.Len())
	}
}

func TestExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New[word](0, nil)
	c.now = func() time.Time { return now }

	c.Add("ttl", newWord("soon gone"), time.Minute)
	c.Add("forever", newWord("stays"), 0)

	if _, ok := c.Get("ttl"); !ok {
		t.Fatal("entry expired too early")
	}
	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("ttl"); ok {
		t.Fatal("expired entry still served")
	}
	if _, ok := c.Get("forever"); !ok {
		t.Fatal("entry without ttl expired")
	}
	if c.Len() != 1 {
		t.Fatalf("len %d after expiry", c.Len())
	}
}

func TestClear(t *testing.T) {
	c := New[word](0, nil)
	c.Add("x", newWord("1"), 0)
	c.Clear()
	if c.Len() != 0 || c.Bytes() != 0 {
		t.Fatal("clear left entries behind")
	}
}
