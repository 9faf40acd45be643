package services

import (
	"puzzlestats/internal/models"
	"sync"

	"go.uber.org/atomic"
)

type RecordServiceInterface interface {
	// Rename updates the display name of a known user. Unknown users are
	// not created.
	Rename(userID, username string) bool
	AddGuess(userID, username string, puzzleID int, rec models.GuessRecord) bool
	AddGrouping(userID, username string, puzzleID int, rec models.GroupingRecord) bool
	PutTimed(userID, username, date string, seconds int) (replaced bool)
	User(userID string) (*models.User, bool)
	Users() []UserRef
	GetSnapshot() *models.Storage
	PutData(storage *models.Storage)
	Revision() uint64
	UserCount() int
}

// UserRef pairs a user id with a copy of the user's records.
type UserRef struct {
	ID   string
	User *models.User
}

type RecordService struct {
	mu       sync.RWMutex
	users    map[string]*models.User
	order    []string
	revision atomic.Uint64
}

func NewRecordService() RecordServiceInterface {
	return &RecordService{users: make(map[string]*models.User)}
}

// ensureUser reports whether the user was created or renamed.
func (rs *RecordService) ensureUser(userID, username string) (*models.User, bool) {
	u, ok := rs.users[userID]
	if !ok {
		u = models.NewUser(username)
		rs.users[userID] = u
		rs.order = append(rs.order, userID)
		return u, true
	}
	if username != "" && username != u.Username {
		u.Username = username
		return u, true
	}
	return u, false
}

func (rs *RecordService) Rename(userID, username string) bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	u, ok := rs.users[userID]
	if !ok || username == "" || u.Username == username {
		return false
	}
	u.Username = username
	rs.revision.Inc()
	return true
}

func (rs *RecordService) AddGuess(userID, username string, puzzleID int, rec models.GuessRecord) bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	u, changed := rs.ensureUser(userID, username)
	if _, exists := u.Wordle[puzzleID]; exists {
		if changed {
			rs.revision.Inc()
		}
		return false
	}
	u.Wordle[puzzleID] = rec
	rs.revision.Inc()
	return true
}

func (rs *RecordService) AddGrouping(userID, username string, puzzleID int, rec models.GroupingRecord) bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	u, changed := rs.ensureUser(userID, username)
	if _, exists := u.Connections[puzzleID]; exists {
		if changed {
			rs.revision.Inc()
		}
		return false
	}
	u.Connections[puzzleID] = rec
	rs.revision.Inc()
	return true
}

// PutTimed stores a Mini time. A second submission for the same date
// replaces the first.
func (rs *RecordService) PutTimed(userID, username, date string, seconds int) bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	u, _ := rs.ensureUser(userID, username)
	_, replaced := u.Mini[date]
	u.Mini[date] = seconds
	rs.revision.Inc()
	return replaced
}

func (rs *RecordService) User(userID string) (*models.User, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	u, ok := rs.users[userID]
	if !ok {
		return nil, false
	}
	return u.Clone(), true
}

// Users returns copies of every user in first-seen order.
func (rs *RecordService) Users() []UserRef {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	refs := make([]UserRef, 0, len(rs.order))
	for _, id := range rs.order {
		refs = append(refs, UserRef{ID: id, User: rs.users[id].Clone()})
	}
	return refs
}

func (rs *RecordService) GetSnapshot() *models.Storage {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	storage := models.NewStorage()
	storage.Order = append([]string(nil), rs.order...)
	for id, u := range rs.users {
		storage.Users[id] = u.Clone()
	}
	return storage
}

// PutData replaces the whole store, as after loading from disk.
func (rs *RecordService) PutData(storage *models.Storage) {
	if storage == nil {
		storage = models.NewStorage()
	}
	storage.Normalize()

	rs.mu.Lock()
	defer rs.mu.Unlock()

	rs.users = storage.Users
	rs.order = storage.Order
	rs.revision.Inc()
}

func (rs *RecordService) Revision() uint64 {
	return rs.revision.Load()
}

func (rs *RecordService) UserCount() int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return len(rs.users)
}
