// Package poll holds the vote transition engine and the poll catalog
// assembler. The server keeps no per-voter identity: the previous choice in a
// vote intent is asserted by the client, and the decrement is clamped at zero
// so a wrong assertion can never drive a tally negative.
package poll

import (
	"fmt"
	"strings"

	"github.com/greenlink-tr/greenlink/src/api/types"
)

// ErrInvalidVote rejects malformed intents before any state is touched.
var ErrInvalidVote = fmt.Errorf("invalid vote")

// Ledger is the persistence the engine and catalog read tallies from.
type Ledger interface {
	Load() map[string]types.Tally
	Update(fn func(m map[string]types.Tally)) error
}

// RequestLister supplies submitted event requests in submission order.
type RequestLister interface {
	All() []types.EventRequest
}

// Engine applies vote transitions to the ledger.
type Engine struct {
	ledger Ledger
}

func NewEngine(ledger Ledger) *Engine {
	return &Engine{ledger: ledger}
}

// Apply validates the intent, retracts the asserted previous choice (floored
// at zero), counts the new choice and persists the ledger. The returned tally
// is the post-transition value for the target item.
func (e *Engine) Apply(intent types.VoteIntent) (types.Tally, error) {
	if intent.ID == "" || len(intent.ID) > 100 {
		return types.Tally{}, fmt.Errorf("%w: id", ErrInvalidVote)
	}
	if intent.Choice != types.ChoiceYes && intent.Choice != types.ChoiceNo {
		return types.Tally{}, fmt.Errorf("%w: choice %q", ErrInvalidVote, intent.Choice)
	}
	switch intent.PreviousChoice {
	case "", types.ChoiceYes, types.ChoiceNo:
	default:
		return types.Tally{}, fmt.Errorf("%w: previousChoice %q", ErrInvalidVote, intent.PreviousChoice)
	}

	var out types.Tally
	err := e.ledger.Update(func(m map[string]types.Tally) {
		t := m[intent.ID]

		switch intent.PreviousChoice {
		case types.ChoiceYes:
			if t.Yes > 0 {
				t.Yes--
			}
		case types.ChoiceNo:
			if t.No > 0 {
				t.No--
			}
		}

		switch intent.Choice {
		case types.ChoiceYes:
			t.Yes++
		case types.ChoiceNo:
			t.No++
		}

		m[intent.ID] = t
		out = t
	})
	if err != nil {
		return types.Tally{}, err
	}
	return out, nil
}

// titleLimit bounds titles synthesized from freeform messages.
const titleLimit = 80

// Catalog merges the planned events configured at startup with submitted
// event requests and annotates every item with its current tally.
type Catalog struct {
	base     []types.PollItem
	ledger   Ledger
	requests RequestLister
}

func NewCatalog(base []types.PollItem, ledger Ledger, requests RequestLister) *Catalog {
	return &Catalog{base: base, ledger: ledger, requests: requests}
}

// List returns planned events first, in their configured order, then
// submitted requests in submission order. Recomputed on every call.
func (c *Catalog) List() []types.PollItem {
	votes := c.ledger.Load()

	items := make([]types.PollItem, 0, len(c.base))
	for _, e := range c.base {
		t := votes[e.ID]
		e.Yes, e.No = t.Yes, t.No
		items = append(items, e)
	}

	for _, r := range c.requests.All() {
		item := requestToItem(r)
		t := votes[r.ID]
		item.Yes, item.No = t.Yes, t.No
		items = append(items, item)
	}
	return items
}

func requestToItem(r types.EventRequest) types.PollItem {
	label := TypeLabel(r.Type)

	title := firstLine(r.Message)
	if title == "" {
		city := r.City
		if city == "" {
			city = "Şehir"
		}
		title = city + " – " + label
	} else if n := []rune(title); len(n) > titleLimit {
		title = string(n[:titleLimit]) + "..."
	}

	city := r.City
	if city == "" {
		city = "Şehir belirtilmedi"
	}
	date := r.Date
	if date == "" {
		date = "Tarih net değil"
	}
	desc := r.Message
	if desc == "" {
		desc = "Gönüllü tarafından önerilen çevre etkinliği. Detaylar için iletişime geçilebilir."
	}

	return types.PollItem{
		ID:          r.ID,
		Title:       title,
		City:        city,
		Date:        date,
		Type:        label,
		Description: desc,
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
