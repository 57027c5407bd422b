package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"resumeapi/internal/logger"
)

const (
	// CodePrefix starts every resume code.
	CodePrefix = "AU"
	// MaxCodeAttempts bounds the random draws before the timestamp fallback.
	MaxCodeAttempts = 10

	codeMin = 100000
	codeMax = 999999
)

// Guarantee tells how strongly a generated code is known to be unique.
type Guarantee string

const (
	// GuaranteeUnique: the store confirmed no entry held the code at check time.
	GuaranteeUnique Guarantee = "unique"
	// GuaranteeFallbackTimestamp: every random draw collided; the code comes
	// from the clock and was not checked.
	GuaranteeFallbackTimestamp Guarantee = "fallback_timestamp"
	// GuaranteeProbablyNonUnique: the store was unavailable or the check
	// failed, so the candidate was returned unchecked.
	GuaranteeProbablyNonUnique Guarantee = "probably_non_unique"
)

// CodeResult is a generated resume code and the strength of its uniqueness.
// The check and the later insert are not atomic, so even GuaranteeUnique
// can collide under concurrent requests.
type CodeResult struct {
	Code      string
	Guarantee Guarantee
	Attempts  int
}

var codesIssued = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "resume_codes_issued_total",
	Help: "Resume codes issued, by uniqueness guarantee.",
}, []string{"guarantee"})

// CodeOption customizes a code generator.
type CodeOption func(*codeService)

// WithRandom replaces the source of six-digit draws.
func WithRandom(draw func() int) CodeOption {
	return func(s *codeService) { s.draw = draw }
}

// WithClock replaces the clock used by the timestamp fallback.
func WithClock(now func() time.Time) CodeOption {
	return func(s *codeService) { s.now = now }
}

// codeService issues resume codes, consulting the store to avoid collisions.
type codeService struct {
	store CodeLookup
	draw  func() int
	now   func() time.Time
}

// NewCodeService creates a CodeGenerator over store.
func NewCodeService(store CodeLookup, opts ...CodeOption) CodeGenerator {
	s := &codeService{
		store: store,
		draw:  func() int { return codeMin + rand.IntN(codeMax-codeMin+1) },
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate never fails: store problems weaken the guarantee instead of
// blocking PDF delivery.
func (s *codeService) Generate(ctx context.Context) CodeResult {
	log := logger.Get()

	for attempt := 1; attempt <= MaxCodeAttempts; attempt++ {
		code := fmt.Sprintf("%s%06d", CodePrefix, s.draw())

		if s.store == nil || !s.store.Available(ctx) {
			log.Warnw("store unavailable, issuing unchecked resume code", "code", code)
			return s.issue(code, GuaranteeProbablyNonUnique, attempt)
		}

		exists, err := s.store.CodeExists(ctx, code)
		if err != nil {
			log.Errorw("resume code check failed, issuing unchecked code", "code", code, "error", err)
			return s.issue(code, GuaranteeProbablyNonUnique, attempt)
		}
		if !exists {
			log.Debugw("generated unique resume code", "code", code, "attempt", attempt)
			return s.issue(code, GuaranteeUnique, attempt)
		}
		log.Warnw("resume code already exists, drawing again", "code", code, "attempt", attempt)
	}

	code := TimestampCode(s.now())
	log.Errorw("could not find a free resume code, using timestamp fallback",
		"attempts", MaxCodeAttempts,
		"code", code,
	)
	return s.issue(code, GuaranteeFallbackTimestamp, MaxCodeAttempts)
}

func (s *codeService) issue(code string, g Guarantee, attempts int) CodeResult {
	codesIssued.WithLabelValues(string(g)).Inc()
	return CodeResult{Code: code, Guarantee: g, Attempts: attempts}
}

// TimestampCode derives a code from the last six digits of t in Unix milliseconds.
func TimestampCode(t time.Time) string {
	ms := t.UnixMilli() % 1_000_000
	if ms < 0 {
		ms = -ms
	}
	return fmt.Sprintf("%s%06d", CodePrefix, ms)
}
