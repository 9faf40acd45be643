package models

const StorageVersion = 2

// Storage is the whole persisted document. Order keeps users in the order
// they were first seen so ranking ties stay stable across restarts.
type Storage struct {
	Version int              `json:"version"`
	Order   []string         `json:"order"`
	Users   map[string]*User `json:"users"`
}

func NewStorage() *Storage {
	return &Storage{
		Version: StorageVersion,
		Users:   make(map[string]*User),
	}
}

// Normalize fills missing maps and repairs Order so it lists every user once.
func (s *Storage) Normalize() {
	if s.Users == nil {
		s.Users = make(map[string]*User)
	}
	for id, u := range s.Users {
		if u == nil {
			delete(s.Users, id)
			continue
		}
		u.ensureMaps()
	}

	seen := make(map[string]struct{}, len(s.Users))
	order := make([]string, 0, len(s.Users))
	for _, id := range s.Order {
		if _, ok := s.Users[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		order = append(order, id)
	}
	for _, id := range sortedKeys(s.Users) {
		if _, ok := seen[id]; !ok {
			order = append(order, id)
		}
	}
	s.Order = order
	s.Version = StorageVersion
}
