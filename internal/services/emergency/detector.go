package emergency

import "strings"

// DefaultPhrases are the detection phrases that indicate the assistant's own
// response is directing the user toward emergency care. Matching is a
// case-insensitive substring check, so phrases are listed lowercased.
var DefaultPhrases = []string{
	"call 911",
	"call 112",
	"call 108",
	"emergency room",
	"seek immediate",
	"life-threatening",
}

// Detector checks accumulated response text against a fixed phrase list.
// It holds no per-request state; the one-shot latch belongs to the caller.
type Detector struct {
	phrases []string
}

// NewDetector builds a detector over the given phrases, or DefaultPhrases
// when none are supplied.
func NewDetector(phrases ...string) *Detector {
	if len(phrases) == 0 {
		phrases = DefaultPhrases
	}

	lowered := make([]string, len(phrases))
	for i, p := range phrases {
		lowered[i] = strings.ToLower(p)
	}
	return &Detector{phrases: lowered}
}

// Scan reports whether the accumulated response text contains any detection
// phrase. The full buffer is checked, not just the latest fragment, because
// a phrase may straddle a fragment boundary.
func (d *Detector) Scan(accumulated string) bool {
	lowered := strings.ToLower(accumulated)
	for _, phrase := range d.phrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}
