package analyzer

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/AdrianWangs/go-hstring/pkg/hstring"
)

const catText = "The cat sat on the MAT. The cat ran."

func TestAnalyze(t *testing.T) {
	a := New("test", 0)
	r, err := a.Analyze(context.Background(), []byte(catText))
	if err != nil {
		t.Fatal(err)
	}
	if r.Total != 9 || r.Bytes != len(catText) {
		t.Fatalf("total %d bytes %d", r.Total, r.Bytes)
	}
	wantWords := []string{"cat", "mat", "on", "ran", "sat", "the"}
	if !reflect.DeepEqual(r.Words, wantWords) {
		t.Fatalf("words %v, want %v", r.Words, wantWords)
	}
	top := r.Top(2)
	want := []hstring.WordCount{{Word: "the", Count: 3}, {Word: "cat", Count: 2}}
	if !reflect.DeepEqual(top, want) {
		t.Fatalf("top %v, want %v", top, want)
	}
	if len(r.Top(0)) != len(r.Frequency) {
		t.Fatal("Top(0) should return every word")
	}
	if r.ID == "" {
		t.Fatal("report id missing")
	}
}

func TestAnalyzeCaches(t *testing.T) {
	a := New("cached", 1<<20)
	ctx := context.Background()
	first, err := a.Analyze(ctx, []byte("one two two"))
	if err != nil {
		t.Fatal(err)
	}
	second, err := a.Analyze(ctx, []byte("one two two"))
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatal("second call should be served from cache")
	}
	stats := a.Stats()
	if stats.Gets != 2 || stats.Hits != 1 || stats.Loads != 1 {
		t.Fatalf("stats %+v", stats)
	}
	if a.Cached() != 1 || a.CachedBytes() <= 0 {
		t.Fatalf("cached %d (%d bytes)", a.Cached(), a.CachedBytes())
	}

	a.Clear()
	third, _ := a.Analyze(ctx, []byte("one two two"))
	if third == first {
		t.Fatal("clear should force a fresh analysis")
	}
}

func TestAnalyzeTTL(t *testing.T) {
	a := New("ttl", 0, WithTTL(time.Nanosecond))
	ctx := context.Background()
	first, _ := a.Analyze(ctx, []byte("short lived"))
	time.Sleep(time.Millisecond)
	second, _ := a.Analyze(ctx, []byte("short lived"))
	if first == second {
		t.Fatal("expired report was served")
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	a := New("empty", 0)
	for _, in := range []string{"", "   \t\n"} {
		_, err := a.Analyze(context.Background(), []byte(in))
		if !IsEmptyInputError(err) || !errors.Is(err, ErrEmptyInput) {
			t.Fatalf("Analyze(%q) error = %v", in, err)
		}
	}
	if a.Cached() != 0 {
		t.Fatal("failed analyses must not be cached")
	}

	r, err := a.Analyze(context.Background(), []byte("... 123 ..."))
	if err != nil || r.Total != 0 {
		t.Fatalf("punctuation only: %v, %+v", err, r)
	}
}

func TestAnalyzeMaxInput(t *testing.T) {
	a := New("limited", 0, WithMaxInput(8))
	_, err := a.Analyze(context.Background(), []byte("way more than eight bytes"))
	if !IsInputTooLargeError(err) {
		t.Fatalf("error = %v", err)
	}
	if IsEmptyInputError(err) || IsInvalidLengthError(err) {
		t.Fatal("error matched the wrong type")
	}
}

func TestAnalyzeCancelled(t *testing.T) {
	a := New("cancel", 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := a.Analyze(ctx, []byte("text")); !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v", err)
	}
}

func TestAnalyzeConcurrent(t *testing.T) {
	a := New("concurrent", 1<<20)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := a.Analyze(context.Background(), []byte(catText))
			if err != nil || r.Total != 9 {
				t.Errorf("concurrent analyze: %v", err)
			}
		}()
	}
	wg.Wait()
	if a.Stats().Gets != 20 {
		t.Fatalf("gets %d", a.Stats().Gets)
	}
}

func TestAnalyzeBatch(t *testing.T) {
	a := New("batch", 1<<20)
	texts := [][]byte{[]byte("a b"), []byte(catText), []byte("a b")}
	reports, err := a.AnalyzeBatch(context.Background(), texts, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != 3 || reports[0].Total != 2 || reports[1].Total != 9 {
		t.Fatalf("reports %+v", reports)
	}
	if reports[0].ID != reports[2].ID {
		t.Fatal("identical texts should share a report")
	}

	_, err = a.AnalyzeBatch(context.Background(), [][]byte{[]byte("ok"), []byte("  ")}, 0)
	if !IsEmptyInputError(err) {
		t.Fatalf("error = %v", err)
	}
}
