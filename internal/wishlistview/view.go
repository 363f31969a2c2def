// Package wishlistview is the wishlist page: every saved game as a card,
// cards leaving with a short transition when un-saved, and an empty-state
// indicator when nothing is left.
package wishlistview

import (
	"time"

	"github.com/ryanm101/biblioteca/internal/catalog"
	"github.com/ryanm101/biblioteca/internal/render"
	"github.com/ryanm101/biblioteca/internal/wishlist"
)

// RemovalDelay is how long an un-saved card stays in its removing state.
const RemovalDelay = 300 * time.Millisecond

// View holds the cards currently on the page.
type View struct {
	cards []render.Card
}

// New creates a view listing games, all of which are saved.
func New(games []catalog.GameSummary) *View {
	v := &View{}
	v.Load(games)
	return v
}

// Load replaces the page contents with games.
func (v *View) Load(games []catalog.GameSummary) {
	v.cards = make([]render.Card, 0, len(games))
	for _, g := range games {
		v.cards = append(v.cards, render.NewCard(g, true))
	}
}

// Cards returns the cards on the page, removing ones included.
func (v *View) Cards() []render.Card {
	return v.cards
}

// Len returns the number of cards on the page.
func (v *View) Len() int {
	return len(v.cards)
}

// Empty reports whether the empty-state indicator is shown.
func (v *View) Empty() bool {
	return len(v.cards) == 0
}

func (v *View) index(id int) int {
	for i, c := range v.cards {
		if c.Game.ID == id {
			return i
		}
	}
	return -1
}

// Apply folds a membership change into the page. It returns true when a
// card entered its removing state; the caller must call Finish for that id
// once RemovalDelay has elapsed.
func (v *View) Apply(c wishlist.Change) bool {
	i := v.index(c.ID)

	if c.Saved {
		if i >= 0 {
			v.cards[i].Saved = true
			v.cards[i].Removing = false
			return false
		}
		v.cards = append(v.cards, render.NewCard(c.Game, true))
		return false
	}

	if i < 0 || v.cards[i].Removing {
		return false
	}
	v.cards[i].Saved = false
	v.cards[i].Removing = true
	return true
}

// Finish drops the card for id if it is still removing. A card saved again
// during its transition stays.
func (v *View) Finish(id int) bool {
	i := v.index(id)
	if i < 0 || !v.cards[i].Removing {
		return false
	}
	v.cards = append(v.cards[:i], v.cards[i+1:]...)
	return true
}
