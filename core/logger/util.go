package logger

import (
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"
)

// RoundMS rounds duration to the nearest millisecond for consistent logging.
func RoundMS(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return d.Round(time.Millisecond)
}

// SummarizeStrings joins up to limit elements and reports whether truncation happened.
func SummarizeStrings(values []string, limit int) (string, bool) {
	if limit <= 0 {
		return "", len(values) > 0
	}
	if len(values) <= limit {
		return strings.Join(values, ", "), false
	}
	return strings.Join(values[:limit], ", "), true
}

// SanitizeLimit drops control characters (except tab and newline) and caps s at max runes.
func SanitizeLimit(s string, max int) string {
	if max <= 0 || s == "" {
		return ""
	}
	var b strings.Builder
	n := 0
	for _, r := range s {
		if r != '\n' && r != '\t' && (unicode.IsControl(r) || unicode.Is(unicode.Cf, r)) {
			continue
		}
		if n == max {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}

// ratioSampler lets through numerator out of every denominator events.
type ratioSampler struct {
	mu          sync.Mutex
	numerator   int
	denominator int
	counter     int
}

func newRatioSampler(numerator, denominator int) *ratioSampler {
	s := &ratioSampler{}
	s.Set(numerator, denominator)
	return s
}

// Set configures the ratio; non-positive values disable sampling (everything passes).
func (s *ratioSampler) Set(numerator, denominator int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if numerator <= 0 || denominator <= 0 {
		numerator, denominator = 0, 0
	}
	if numerator > denominator {
		numerator = denominator
	}
	s.numerator, s.denominator, s.counter = numerator, denominator, 0
}

// Allow reports whether the current event should pass sampling.
func (s *ratioSampler) Allow() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.denominator <= 0 {
		return true
	}
	s.counter++
	if s.counter > s.denominator {
		s.counter = 1
	}
	return s.counter <= s.numerator
}

// parseRatioSpec accepts "n/d" or "d" (meaning 1/d). Zero or garbage yields 0, 0.
func parseRatioSpec(spec string) (int, int) {
	spec = strings.TrimSpace(spec)
	if num, den, ok := strings.Cut(spec, "/"); ok {
		n, err1 := strconv.Atoi(strings.TrimSpace(num))
		d, err2 := strconv.Atoi(strings.TrimSpace(den))
		if err1 == nil && err2 == nil {
			return n, d
		}
		return 0, 0
	}
	if v, err := strconv.Atoi(spec); err == nil && v > 0 {
		return 1, v
	}
	return 0, 0
}
