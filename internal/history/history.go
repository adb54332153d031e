// Package history persists completed game records per user and derives
// the profile statistics, achievements, and JLPT level progress shown on
// the stats screens.
package history

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/kdnguyen/gogaku/internal/store"
)

// DefaultRetention is how many records are kept per user. Older records
// fall off the end when a new one is written.
const DefaultRetention = 20

// DefaultPageSize is the number of records per page when browsing.
const DefaultPageSize = 10

// Record is one completed game session.
type Record struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	Score       int    `json:"score"`
	Total       int    `json:"total"`
	Date        string `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Time        string `json:"time"`
	Icon        string `json:"icon"`
}

// Entry is what a finished game reports. The service fills in the
// identifier, timestamps, and description.
type Entry struct {
	Type  string
	Title string
	Icon  string
	Score int
	Total int
}

// Stats is the aggregate summary of a user's play history.
type Stats struct {
	GamesPlayed   int
	GrammarPoints int
	StudyHours    float64
	Achievements  int
}

// LevelProgress maps each JLPT level to the percentage of games whose
// score ratio fell in that level's band. Percentages sum to roughly 100.
type LevelProgress struct {
	N5 int
	N4 int
	N3 int
	N2 int
	N1 int
}

// Page is one page of records, newest first.
type Page struct {
	Records    []Record
	Page       int
	TotalPages int
	Total      int
}

// Service reads and writes per-user game history through the key-value
// store.
type Service struct {
	kv        store.KVStore
	retention int
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithRetention overrides how many records are kept per user.
func WithRetention(n int) Option {
	return func(s *Service) { s.retention = n }
}

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a history service over kv.
func NewService(kv store.KVStore, opts ...Option) *Service {
	s := &Service{
		kv:        kv,
		retention: DefaultRetention,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func historyKey(userID int64) string {
	return fmt.Sprintf("quizHistory_%d", userID)
}

// Record appends a completed game to the user's history, newest first,
// trimming to the retention limit.
func (s *Service) Record(ctx context.Context, userID int64, e Entry) (Record, error) {
	if e.Total <= 0 {
		return Record{}, fmt.Errorf("record: total must be positive, got %d", e.Total)
	}
	if e.Score < 0 || e.Score > e.Total {
		return Record{}, fmt.Errorf("record: score %d out of range [0,%d]", e.Score, e.Total)
	}

	now := s.now()
	rec := Record{
		ID:          now.UnixMilli(),
		Type:        e.Type,
		Score:       e.Score,
		Total:       e.Total,
		Date:        now.UTC().Format(time.RFC3339),
		Title:       e.Title,
		Description: fmt.Sprintf("Score: %d/%d", e.Score, e.Total),
		Time:        now.Format("1/2/2006, 3:04:05 PM"),
		Icon:        e.Icon,
	}

	records, err := s.List(ctx, userID)
	if err != nil {
		return Record{}, err
	}
	records = append([]Record{rec}, records...)
	if len(records) > s.retention {
		records = records[:s.retention]
	}
	if err := store.SetJSON(ctx, s.kv, historyKey(userID), records); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// List returns all records for the user, newest first. A user with no
// history gets an empty slice. Corrupt stored data also reads as empty.
func (s *Service) List(ctx context.Context, userID int64) ([]Record, error) {
	var records []Record
	ok, err := store.GetJSON(ctx, s.kv, historyKey(userID), &records)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []Record{}, nil
	}
	return records, nil
}

// Clear removes the user's entire history.
func (s *Service) Clear(ctx context.Context, userID int64) error {
	return s.kv.Remove(ctx, historyKey(userID))
}

// Page returns the given 1-indexed page of records. Pages beyond the end
// are empty but still report the true totals.
func (s *Service) Page(ctx context.Context, userID int64, page int) (Page, error) {
	if page < 1 {
		page = 1
	}
	records, err := s.List(ctx, userID)
	if err != nil {
		return Page{}, err
	}

	totalPages := (len(records) + DefaultPageSize - 1) / DefaultPageSize
	if totalPages == 0 {
		totalPages = 1
	}

	start := (page - 1) * DefaultPageSize
	end := start + DefaultPageSize
	if start > len(records) {
		start = len(records)
	}
	if end > len(records) {
		end = len(records)
	}

	return Page{
		Records:    records[start:end],
		Page:       page,
		TotalPages: totalPages,
		Total:      len(records),
	}, nil
}

// Stats aggregates the user's history into the profile summary.
// Study time is estimated at 0.3 hours per game, rounded to one decimal.
func (s *Service) Stats(ctx context.Context, userID int64) (Stats, error) {
	records, err := s.List(ctx, userID)
	if err != nil {
		return Stats{}, err
	}

	st := Stats{GamesPlayed: len(records)}
	perfect := false
	for _, r := range records {
		st.GrammarPoints += r.Score
		if r.Total > 0 && r.Score == r.Total {
			perfect = true
		}
	}
	st.StudyHours = math.Round(float64(st.GamesPlayed)*0.3*10) / 10

	if st.GamesPlayed >= 1 {
		st.Achievements++
	}
	if st.GrammarPoints >= 20 {
		st.Achievements++
	}
	if st.GamesPlayed >= 5 {
		st.Achievements++
	}
	if st.StudyHours >= 5 {
		st.Achievements++
	}
	if perfect {
		st.Achievements++
	}
	return st, nil
}

// LevelProgress buckets each game by its score ratio and reports what
// percentage of games landed in each JLPT band. A perfect game counts as
// N5 mastery; the weakest games count toward N1.
func (s *Service) LevelProgress(ctx context.Context, userID int64) (LevelProgress, error) {
	records, err := s.List(ctx, userID)
	if err != nil {
		return LevelProgress{}, err
	}
	if len(records) == 0 {
		return LevelProgress{}, nil
	}

	var n5, n4, n3, n2, n1 int
	for _, r := range records {
		if r.Total <= 0 {
			continue
		}
		ratio := float64(r.Score) / float64(r.Total)
		switch {
		case ratio >= 1.0:
			n5++
		case ratio >= 0.8:
			n4++
		case ratio >= 0.6:
			n3++
		case ratio >= 0.4:
			n2++
		default:
			n1++
		}
	}

	total := float64(len(records))
	pct := func(n int) int {
		return int(math.Round(float64(n) / total * 100))
	}
	return LevelProgress{
		N5: pct(n5),
		N4: pct(n4),
		N3: pct(n3),
		N2: pct(n2),
		N1: pct(n1),
	}, nil
}
