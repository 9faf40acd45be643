package models

import "maps"

type User struct {
	Username    string                 `json:"username"`
	Wordle      map[int]GuessRecord    `json:"wordle"`
	Connections map[int]GroupingRecord `json:"connections"`
	Mini        map[string]int         `json:"mini"`
}

func NewUser(username string) *User {
	return &User{
		Username:    username,
		Wordle:      make(map[int]GuessRecord),
		Connections: make(map[int]GroupingRecord),
		Mini:        make(map[string]int),
	}
}

// Clone returns a deep copy safe to hand out of the store.
func (u *User) Clone() *User {
	c := &User{
		Username:    u.Username,
		Wordle:      maps.Clone(u.Wordle),
		Connections: maps.Clone(u.Connections),
		Mini:        maps.Clone(u.Mini),
	}
	c.ensureMaps()
	return c
}

func (u *User) ensureMaps() {
	if u.Wordle == nil {
		u.Wordle = make(map[int]GuessRecord)
	}
	if u.Connections == nil {
		u.Connections = make(map[int]GroupingRecord)
	}
	if u.Mini == nil {
		u.Mini = make(map[string]int)
	}
}

// Records returns how many results the user holds for a game.
func (u *User) Records(game GameType) int {
	switch game {
	case GameWordle:
		return len(u.Wordle)
	case GameConnections:
		return len(u.Connections)
	case GameMini:
		return len(u.Mini)
	}
	return 0
}
