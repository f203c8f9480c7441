package history

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/prasetyowira/qrstudio/constant"
	"github.com/prasetyowira/qrstudio/domain/payload"
	"github.com/prasetyowira/qrstudio/infrastructure/logger"
)

// Entry is one persisted record of a generated QR payload. Entries are
// immutable once added; Remove and Clear are the only mutators.
type Entry struct {
	ID            string       `json:"id"`
	Type          payload.Type `json:"type"`
	Value         string       `json:"value"`
	Content       string       `json:"content,omitempty"`
	Timestamp     int64        `json:"timestamp"`
	HTMLCode      string       `json:"htmlCode,omitempty"`
	Customization *Style       `json:"customization,omitempty"`
}

// Style is the snapshot of rendering options carried with an entry. The
// history store and codec treat it as opaque; only the renderer interprets it.
type Style struct {
	FgColor          string   `json:"fgColor"`
	BgColor          string   `json:"bgColor"`
	DotType          string   `json:"dotType"`
	CornerDotType    string   `json:"cornerDotType"`
	CornerSquareType string   `json:"cornerSquareType"`
	UseGradient      bool     `json:"useGradient"`
	GradientColors   []string `json:"gradientColors"`
	LogoURL          string   `json:"logoUrl,omitempty"`
	LogoSize         int      `json:"logoSize,omitempty"`
	QRSize           int      `json:"qrSize"`
	ErrorLevel       string   `json:"errorLevel"`
}

// Event signals that the persisted history under Key changed.
type Event struct {
	Key string
}

// Repository defines the key-value persistence the history service needs.
// Get returns an error with constant.ErrStoreKeyNotFound text when the key
// is absent.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Service is the size-bounded, ordered history of generated payloads.
// Persistence failures never propagate: reads degrade to an empty list and
// writes to a no-op, both logged.
type Service struct {
	repo  Repository
	limit int

	// writeMu serializes the read-modify-write cycle on the persisted list.
	writeMu sync.Mutex

	mu      sync.Mutex
	subs    map[int]chan Event
	nextSub int
}

// NewService creates a history service capped at limit entries. A limit of
// zero or less falls back to the default capacity of 20.
func NewService(repo Repository, limit int) *Service {
	if limit <= 0 {
		limit = constant.DefaultHistoryLimit
	}

	logger.Debug("Creating history service", logger.LoggerInfo{
		ContextFunction: constant.CtxDomain,
		Data: map[string]interface{}{
			constant.DataService: "history",
			constant.DataLimit:   limit,
		},
	})

	return &Service{
		repo:  repo,
		limit: limit,
		subs:  make(map[int]chan Event),
	}
}

// List returns all entries, most recently added first. An absent or
// unreadable store yields an empty list, never an error.
func (s *Service) List(ctx context.Context) []Entry {
	raw, err := s.repo.Get(ctx, constant.HistoryStorageKey)
	if err != nil {
		if err.Error() != constant.ErrStoreKeyNotFound {
			logger.CtxWarn(ctx, "Failed to read history, treating as empty", logger.LoggerInfo{
				ContextFunction: constant.CtxListHistory,
				Error: &logger.CustomError{
					Code:    constant.ErrCodePersistFailure,
					Message: err.Error(),
					Type:    constant.ErrTypeStorage,
				},
			})
		}
		return []Entry{}
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		logger.CtxWarn(ctx, "Corrupt history data, treating as empty", logger.LoggerInfo{
			ContextFunction: constant.CtxListHistory,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeCorruptHistory,
				Message: err.Error(),
				Type:    constant.ErrTypeStorage,
			},
		})
		return []Entry{}
	}
	return entries
}

// Get looks up a single entry by id.
func (s *Service) Get(ctx context.Context, id string) (Entry, bool) {
	for _, e := range s.List(ctx) {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Add assigns a fresh id and timestamp, prepends the entry, truncates the
// list to the capacity bound (oldest dropped first), persists, and notifies
// subscribers. The stored entry is returned. On persistence failure the
// previous state is kept and the entry is still returned for display.
func (s *Service) Add(ctx context.Context, e Entry) Entry {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	e.ID = newEntryID()
	e.Timestamp = time.Now().UnixMilli()

	entries := append([]Entry{e}, s.List(ctx)...)
	if len(entries) > s.limit {
		entries = entries[:s.limit]
	}

	if s.persist(ctx, constant.CtxAddHistory, entries) {
		logger.CtxInfo(ctx, "History entry added", logger.LoggerInfo{
			ContextFunction: constant.CtxAddHistory,
			Data: map[string]interface{}{
				constant.DataEntryID:    e.ID,
				constant.DataType:       string(e.Type),
				constant.DataEntryCount: len(entries),
			},
		})
		s.notify()
	}
	return e
}

// Remove filters out the entry with the given id. A missing id is a no-op.
func (s *Service) Remove(ctx context.Context, id string) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	entries := s.List(ctx)
	filtered := entries[:0:0]
	for _, e := range entries {
		if e.ID != id {
			filtered = append(filtered, e)
		}
	}
	if len(filtered) == len(entries) {
		logger.CtxDebug(ctx, "History entry not found, nothing removed", logger.LoggerInfo{
			ContextFunction: constant.CtxRemoveHistory,
			Data: map[string]interface{}{
				constant.DataEntryID: id,
			},
		})
		return
	}

	if s.persist(ctx, constant.CtxRemoveHistory, filtered) {
		logger.CtxInfo(ctx, "History entry removed", logger.LoggerInfo{
			ContextFunction: constant.CtxRemoveHistory,
			Data: map[string]interface{}{
				constant.DataEntryID:    id,
				constant.DataEntryCount: len(filtered),
			},
		})
		s.notify()
	}
}

// Clear deletes the persisted history entirely.
func (s *Service) Clear(ctx context.Context) {
	if err := s.repo.Delete(ctx, constant.HistoryStorageKey); err != nil {
		logger.CtxError(ctx, "Failed to clear history", logger.LoggerInfo{
			ContextFunction: constant.CtxClearHistory,
			Error: &logger.CustomError{
				Code:    constant.ErrCodePersistFailure,
				Message: err.Error(),
				Type:    constant.ErrTypeStorage,
			},
		})
		return
	}

	logger.CtxInfo(ctx, "History cleared", logger.LoggerInfo{
		ContextFunction: constant.CtxClearHistory,
	})
	s.notify()
}

// Subscribe registers for change events. The returned cancel function must
// be called to release the subscription. Events are delivered best-effort:
// a slow subscriber misses intermediate notifications rather than blocking
// mutations.
func (s *Service) Subscribe() (<-chan Event, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan Event, 1)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

func (s *Service) notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- Event{Key: constant.HistoryStorageKey}:
		default:
		}
	}
}

func (s *Service) persist(ctx context.Context, fn string, entries []Entry) bool {
	data, err := json.Marshal(entries)
	if err == nil {
		err = s.repo.Set(ctx, constant.HistoryStorageKey, string(data))
	}
	if err != nil {
		logger.CtxError(ctx, "Failed to persist history", logger.LoggerInfo{
			ContextFunction: fn,
			Error: &logger.CustomError{
				Code:    constant.ErrCodePersistFailure,
				Message: err.Error(),
				Type:    constant.ErrTypeStorage,
			},
			Data: map[string]interface{}{
				constant.DataEntryCount: len(entries),
			},
		})
		return false
	}
	return true
}

// newEntryID builds a time-based id with a random suffix. Collisions are
// negligible for a 20-entry history.
func newEntryID() string {
	suffix := make([]byte, 4)
	rand.Read(suffix)
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + fmt.Sprintf("%x", suffix)
}
