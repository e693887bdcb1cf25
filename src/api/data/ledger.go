package data

import (
	"log"
	"os"
	"sync"

	"github.com/greenlink-tr/greenlink/src/api/types"
)

// Ledger durably maps a poll-item id to its vote tally. The backing document
// is one flat JSON object, small enough to load and rewrite wholesale, so the
// only mutation path is a full read-modify-write cycle. Update holds mu for
// the whole cycle; concurrent increments cannot be lost.
type Ledger struct {
	path string
	mu   sync.Mutex
}

func NewLedger(path string) *Ledger {
	return &Ledger{path: path}
}

// Load returns the full tally map. Missing or unparsable documents degrade to
// an empty map; read paths never fail hard.
func (l *Ledger) Load() map[string]types.Tally {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load()
}

func (l *Ledger) load() map[string]types.Tally {
	m := make(map[string]types.Tally)
	if err := readJSON(l.path, &m); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("ledger: read %s: %v", l.path, err)
		}
		return make(map[string]types.Tally)
	}
	return m
}

// Update runs fn against the current tally map and persists the result. The
// lock covers load, fn and save, so transitions are serialized. A save
// failure is returned to the caller; the on-disk state is then unchanged.
func (l *Ledger) Update(fn func(m map[string]types.Tally)) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	m := l.load()
	fn(m)
	if err := writeJSON(l.path, m); err != nil {
		log.Printf("ledger: write %s: %v", l.path, err)
		return err
	}
	return nil
}
