package browse

import "github.com/ryanm101/biblioteca/internal/catalog"

// Grid is the rendered state of the library grid.
type Grid struct {
	Games        []catalog.GameSummary
	Placeholders int  // Loading cells shown while a reset is in flight
	Empty        bool // Show the "no results" indicator
	ShowMore     bool // Show the load-more control
}

func (g *Grid) reset(placeholders int) {
	g.Games = nil
	g.Placeholders = placeholders
	g.Empty = false
	g.ShowMore = false
}

// Len returns the number of cells, placeholders included.
func (g *Grid) Len() int {
	return len(g.Games) + g.Placeholders
}

// Index returns the position of the game with id, or -1.
func (g *Grid) Index(id int) int {
	for i, game := range g.Games {
		if game.ID == id {
			return i
		}
	}
	return -1
}
