// Package memory implements the repository interfaces with in-process
// maps. This is the primary backend: all entity state lives for the
// process lifetime and is lost on restart.
//
// LAYOUT:
// Users live in one map keyed by user id. Every other entity is
// collection-typed — a map from owning user id to a slice — because the
// access pattern is always "everything belonging to this user". Entities
// that can be addressed by their own id without knowing the owner
// (topics, interviews, notes) additionally register themselves in a
// global id→owner index at create time, so a bare-id update is two map
// hits instead of a scan over every user's collection.
//
// IDS:
// One counter feeds every entity kind, so ids are globally unique across
// kinds — a user and an interview never share an id. The counter only
// moves forward; ids are never reused.
//
// CONCURRENCY:
// A single RWMutex guards all maps. Individual operations are short and
// never block on anything external, so one lock is enough to keep every
// read and write consistent under parallel requests. Multi-step
// read-modify-write sequences (stats increments) are serialised one
// level up, in the service layer's per-user locks.
package memory

import (
	"sync"

	"github.com/sakif/astralearn/internal/model"
	"github.com/sakif/astralearn/internal/repository"
)

// Compile-time check that the full Store surface is implemented.
var _ repository.Store = (*Store)(nil)

// Store holds all entity state for the process lifetime.
type Store struct {
	mu sync.RWMutex

	users          map[int64]*model.User
	stats          map[int64]*model.UserStats       // keyed by owning user id
	topics         map[int64][]model.LearningTopic  // keyed by owning user id
	interviews     map[int64][]model.Interview      // keyed by owning user id
	submissions    map[int64][]model.CodeSubmission // keyed by owning user id
	resumeFeedback map[int64][]model.ResumeFeedback // keyed by owning user id
	notes          map[int64][]model.TechNote       // keyed by owning user id
	activities     map[int64][]model.Activity       // keyed by owning user id

	// owners maps a topic/interview/note id to its owning user id.
	owners map[int64]int64

	nextID int64
}

// New creates an empty Store. Construct one per process (or per test —
// a fresh instance is complete isolation).
func New() *Store {
	return &Store{
		users:          make(map[int64]*model.User),
		stats:          make(map[int64]*model.UserStats),
		topics:         make(map[int64][]model.LearningTopic),
		interviews:     make(map[int64][]model.Interview),
		submissions:    make(map[int64][]model.CodeSubmission),
		resumeFeedback: make(map[int64][]model.ResumeFeedback),
		notes:          make(map[int64][]model.TechNote),
		activities:     make(map[int64][]model.Activity),
		owners:         make(map[int64]int64),
	}
}

// allocID returns the next id from the shared counter.
// Callers must hold s.mu.
func (s *Store) allocID() int64 {
	s.nextID++
	return s.nextID
}
