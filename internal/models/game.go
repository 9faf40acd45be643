package models

import (
	"fmt"
	"strings"
)

type GameType string

const (
	GameWordle      GameType = "wordle"
	GameConnections GameType = "connections"
	GameMini        GameType = "mini"
)

var Games = []GameType{GameWordle, GameConnections, GameMini}

func ParseGameType(s string) (GameType, error) {
	switch g := GameType(strings.ToLower(strings.TrimSpace(s))); g {
	case GameWordle, GameConnections, GameMini:
		return g, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGame, s)
}

func (g GameType) Title() string {
	switch g {
	case GameWordle:
		return "Wordle"
	case GameConnections:
		return "Connections"
	case GameMini:
		return "Mini"
	}
	return string(g)
}

// LowerIsBetter reports the ranking direction of the game's headline average.
func (g GameType) LowerIsBetter() bool {
	return g != GameConnections
}
