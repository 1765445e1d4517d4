package handler

import "sync"

// WordlistLookup is an in-memory Lookup backed by a fixed singular/plural
// pairing, the table mppserver uses when its <db-config-path> argument is
// an empty string. Reads are
// protected by an RWMutex so a single instance can be shared across every
// reactor without each one needing its own (§5).
type WordlistLookup struct {
	mu        sync.RWMutex
	singToPlu map[string]string
	pluToSing map[string]string
}

// defaultNouns seeds the wordlist with a handful of common Malayalam nouns
// and their plurals, enough to exercise both ISSING and FOF end to end.
var defaultNouns = map[string]string{
	"പൂച്ച":  "പൂച്ചകള്‍",  // cat -> cats
	"കുട്ടി":  "കുട്ടികള്‍",  // child -> children
	"പുസ്തകം": "പുസ്തകങ്ങള്‍", // book -> books
	"വീട്":    "വീടുകള്‍",   // house -> houses
	"മരം":     "മരങ്ങള്‍",    // tree -> trees
}

// NewWordlistLookup builds a WordlistLookup from a singular->plural map. A
// nil or empty map falls back to defaultNouns.
func NewWordlistLookup(nouns map[string]string) *WordlistLookup {
	if len(nouns) == 0 {
		nouns = defaultNouns
	}
	w := &WordlistLookup{
		singToPlu: make(map[string]string, len(nouns)),
		pluToSing: make(map[string]string, len(nouns)),
	}
	for sing, plu := range nouns {
		w.singToPlu[sing] = plu
		w.pluToSing[plu] = sing
	}
	return w
}

func (w *WordlistLookup) IsSingular(noun []byte) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	s := string(noun)
	if _, isPlural := w.pluToSing[s]; isPlural {
		return false
	}
	return true
}

func (w *WordlistLookup) OppositeForm(noun []byte) ([]byte, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	s := string(noun)
	if plu, ok := w.singToPlu[s]; ok {
		return []byte(plu), true
	}
	if sing, ok := w.pluToSing[s]; ok {
		return []byte(sing), true
	}
	return nil, false
}
