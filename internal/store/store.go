// Package store manages the persisted application state: the selection
// set, the conversation history, and the layout flag. The three slices are
// saved independently but share one trust boundary — a corrupt value in any
// of them resets all three.
package store

import (
	"encoding/json"
	"strconv"

	"go.uber.org/zap"

	"vanity/internal/config"
	"vanity/internal/model"
)

// Storage keys for the three persisted slices.
const (
	keySelection = "selected_products"
	keyHistory   = "conversation_history"
	keyRTL       = "rtl_mode"
)

var allKeys = []string{keySelection, keyHistory, keyRTL}

// Backend is a raw string key/value store. Get reports absence via the
// second return value; absence is not an error.
type Backend interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	DeleteAll(keys ...string) error
	Close() error
}

// Store applies the persistence policy on top of a Backend: full-rewrite
// saves, best-effort writes, and joint reset on corruption.
type Store struct {
	backend Backend
	log     *zap.Logger
}

// New wraps a backend with the persistence policy.
func New(b Backend, log *zap.Logger) *Store {
	return &Store{backend: b, log: log}
}

// Open selects a backend from the environment: Redis when
// VANITY_REDIS_ADDR is set, otherwise the DuckDB file at dbPath.
func Open(dbPath string, log *zap.Logger) (*Store, error) {
	if addr := config.RedisAddr(); addr != "" {
		return New(NewRedis(addr), log), nil
	}
	b, err := OpenDuckDB(dbPath)
	if err != nil {
		return nil, err
	}
	return New(b, log), nil
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Load hydrates the persisted state. A decode failure in any slice wipes
// all three and yields the zero State — the slices are one trust boundary
// and are never partially recovered. Backend read failures also yield the
// zero State but leave the stored values alone.
func (s *Store) Load() model.State {
	var st model.State

	rawSel, okSel, err := s.backend.Get(keySelection)
	if err != nil {
		s.log.Error("load selection", zap.Error(err))
		return model.State{}
	}
	rawHist, okHist, err := s.backend.Get(keyHistory)
	if err != nil {
		s.log.Error("load history", zap.Error(err))
		return model.State{}
	}
	rawRTL, okRTL, err := s.backend.Get(keyRTL)
	if err != nil {
		s.log.Error("load layout flag", zap.Error(err))
		return model.State{}
	}

	if okSel {
		if err := json.Unmarshal([]byte(rawSel), &st.Selection); err != nil {
			return s.resetCorrupt("selection", err)
		}
	}
	if okHist {
		if err := json.Unmarshal([]byte(rawHist), &st.History); err != nil {
			return s.resetCorrupt("history", err)
		}
	}
	if okRTL {
		rtl, err := strconv.ParseBool(rawRTL)
		if err != nil {
			return s.resetCorrupt("layout flag", err)
		}
		st.RTL = rtl
	}

	return st
}

// SaveSelection persists the selection set. Failures are logged and
// swallowed; persistence never blocks the in-memory mutation.
func (s *Store) SaveSelection(ids []int) {
	if ids == nil {
		ids = []int{}
	}
	s.save(keySelection, mustJSON(ids))
}

// SaveHistory persists the full conversation history (full-rewrite
// semantics — O(n) per message, acceptable at these sizes).
func (s *Store) SaveHistory(messages []model.Message) {
	if messages == nil {
		messages = []model.Message{}
	}
	s.save(keyHistory, mustJSON(messages))
}

// SaveRTL persists the directional layout flag as a boolean string.
func (s *Store) SaveRTL(rtl bool) {
	s.save(keyRTL, strconv.FormatBool(rtl))
}

// Reset wipes all persisted slices.
func (s *Store) Reset() {
	if err := s.backend.DeleteAll(allKeys...); err != nil {
		s.log.Error("reset state", zap.Error(err))
	}
}

func (s *Store) save(key, value string) {
	if err := s.backend.Set(key, value); err != nil {
		s.log.Error("save state", zap.String("key", key), zap.Error(err))
	}
}

func (s *Store) resetCorrupt(slice string, err error) model.State {
	s.log.Warn("corrupt persisted state, resetting all slices",
		zap.String("slice", slice), zap.Error(err))
	if err := s.backend.DeleteAll(allKeys...); err != nil {
		s.log.Error("reset corrupt state", zap.Error(err))
	}
	return model.State{}
}

func mustJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		// Only reachable with unmarshalable types, which none of the
		// persisted slices contain.
		return "null"
	}
	return string(data)
}
