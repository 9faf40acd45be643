package models

// Tile is one colored square of a Connections result grid.
type Tile rune

const (
	TilePurple Tile = '🟪'
	TileBlue   Tile = '🟦'
	TileGreen  Tile = '🟩'
	TileYellow Tile = '🟨'
)

// GridWidth is the number of tiles in every attempt line.
const GridWidth = 4

// CanonicalOrder is the hardest-first category order.
var CanonicalOrder = []Tile{TilePurple, TileBlue, TileGreen, TileYellow}

func IsTile(r rune) bool {
	switch Tile(r) {
	case TilePurple, TileBlue, TileGreen, TileYellow:
		return true
	}
	return false
}

func (t Tile) String() string {
	return string(rune(t))
}
