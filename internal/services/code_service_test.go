package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"
)

var codePattern = regexp.MustCompile(`^AU\d{6}$`)

// --- mock lookup ---

type mockCodeLookup struct {
	available bool
	taken     map[string]bool
	err       error
	checks    []string
}

func (m *mockCodeLookup) Available(_ context.Context) bool { return m.available }

func (m *mockCodeLookup) CodeExists(_ context.Context, code string) (bool, error) {
	m.checks = append(m.checks, code)
	if m.err != nil {
		return false, m.err
	}
	return m.taken[code], nil
}

// sequence returns a draw function that yields values in order, repeating the last.
func sequence(values ...int) func() int {
	i := 0
	return func() int {
		v := values[i]
		if i < len(values)-1 {
			i++
		}
		return v
	}
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("first_free_candidate", func(t *testing.T) {
		store := &mockCodeLookup{available: true, taken: map[string]bool{}}
		gen := NewCodeService(store, WithRandom(sequence(123456)))

		res := gen.Generate(ctx)

		if res.Code != "AU123456" || res.Guarantee != GuaranteeUnique || res.Attempts != 1 {
			t.Errorf("unexpected result %+v", res)
		}
	})

	t.Run("skips_taken_codes", func(t *testing.T) {
		taken := map[string]bool{}
		draws := []int{}
		for n := 111111; n <= 111119; n++ {
			taken[codeFor(n)] = true
			draws = append(draws, n)
		}
		draws = append(draws, 222222)

		store := &mockCodeLookup{available: true, taken: taken}
		gen := NewCodeService(store, WithRandom(sequence(draws...)))

		res := gen.Generate(ctx)

		if res.Code != "AU222222" {
			t.Errorf("expected AU222222, got %s", res.Code)
		}
		if res.Guarantee != GuaranteeUnique {
			t.Errorf("expected unique guarantee, got %s", res.Guarantee)
		}
		if res.Attempts != 10 || len(store.checks) != 10 {
			t.Errorf("expected 10 attempts, got %d (%d checks)", res.Attempts, len(store.checks))
		}
	})

	t.Run("timestamp_fallback_after_ten_collisions", func(t *testing.T) {
		store := &mockCodeLookup{available: true, taken: map[string]bool{"AU424242": true}}
		fixed := time.UnixMilli(1718000123456)
		gen := NewCodeService(store,
			WithRandom(sequence(424242)),
			WithClock(func() time.Time { return fixed }),
		)

		res := gen.Generate(ctx)

		if len(store.checks) != MaxCodeAttempts {
			t.Errorf("expected exactly %d checks, got %d", MaxCodeAttempts, len(store.checks))
		}
		if res.Guarantee != GuaranteeFallbackTimestamp {
			t.Errorf("expected fallback guarantee, got %s", res.Guarantee)
		}
		if res.Code != "AU123456" {
			t.Errorf("expected timestamp code AU123456, got %s", res.Code)
		}
	})

	t.Run("store_unavailable_skips_check", func(t *testing.T) {
		store := &mockCodeLookup{available: false}
		gen := NewCodeService(store, WithRandom(sequence(654321)))

		res := gen.Generate(ctx)

		if res.Code != "AU654321" || res.Guarantee != GuaranteeProbablyNonUnique {
			t.Errorf("unexpected result %+v", res)
		}
		if len(store.checks) != 0 {
			t.Errorf("expected no existence checks, got %d", len(store.checks))
		}
	})

	t.Run("query_error_returns_candidate", func(t *testing.T) {
		store := &mockCodeLookup{available: true, err: errors.New("connection reset")}
		gen := NewCodeService(store, WithRandom(sequence(111111, 222222)))

		res := gen.Generate(ctx)

		if res.Code != "AU111111" || res.Guarantee != GuaranteeProbablyNonUnique {
			t.Errorf("unexpected result %+v", res)
		}
		if len(store.checks) != 1 {
			t.Errorf("expected a single check, got %d", len(store.checks))
		}
	})

	t.Run("nil_store", func(t *testing.T) {
		res := NewCodeService(nil).Generate(ctx)
		if res.Guarantee != GuaranteeProbablyNonUnique || !codePattern.MatchString(res.Code) {
			t.Errorf("unexpected result %+v", res)
		}
	})
}

func TestGenerateDefaultRandomFormat(t *testing.T) {
	store := &mockCodeLookup{available: true, taken: map[string]bool{}}
	gen := NewCodeService(store)

	for i := 0; i < 200; i++ {
		res := gen.Generate(context.Background())
		if !codePattern.MatchString(res.Code) {
			t.Fatalf("code %q does not match AU + 6 digits", res.Code)
		}
		if res.Code[2] == '0' {
			t.Fatalf("random code %q should not have a leading zero digit", res.Code)
		}
	}
}

func TestTimestampCode(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{1718000123456, "AU123456"},
		{1718000000042, "AU000042"},
	}
	for _, tt := range tests {
		if got := TimestampCode(time.UnixMilli(tt.ms)); got != tt.want {
			t.Errorf("TimestampCode(%d) = %s, want %s", tt.ms, got, tt.want)
		}
	}
}

func codeFor(n int) string {
	return fmt.Sprintf("%s%06d", CodePrefix, n)
}
