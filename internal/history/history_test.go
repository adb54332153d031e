package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/kdnguyen/gogaku/internal/store"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestRecordAndList(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemKV()
	now := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	svc := NewService(kv, WithClock(fixedClock(now)))

	rec, err := svc.Record(ctx, 42, Entry{
		Type:  "MultipleChoice",
		Title: "Completed Multiple Choice Game",
		Icon:  "BookOpen",
		Score: 7,
		Total: 10,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if rec.ID != now.UnixMilli() {
		t.Errorf("id: want %d, got %d", now.UnixMilli(), rec.ID)
	}
	if rec.Description != "Score: 7/10" {
		t.Errorf("description: got %q", rec.Description)
	}

	records, err := svc.List(ctx, 42)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("want 1 record, got %d", len(records))
	}
	if records[0].Title != "Completed Multiple Choice Game" {
		t.Errorf("title: got %q", records[0].Title)
	}
	if records[0].Icon != "BookOpen" {
		t.Errorf("icon: got %q", records[0].Icon)
	}
}

func TestRecordNewestFirst(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemKV()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc := NewService(kv, WithClock(func() time.Time {
		now = now.Add(time.Second)
		return now
	}))

	for i := range 3 {
		if _, err := svc.Record(ctx, 1, Entry{Title: fmt.Sprintf("game %d", i), Score: i, Total: 10}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	records, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if records[0].Title != "game 2" {
		t.Errorf("newest first: got %q", records[0].Title)
	}
	if records[2].Title != "game 0" {
		t.Errorf("oldest last: got %q", records[2].Title)
	}
}

func TestRecordRetention(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemKV()
	svc := NewService(kv, WithRetention(3))

	for i := range 5 {
		if _, err := svc.Record(ctx, 1, Entry{Title: fmt.Sprintf("game %d", i), Score: 1, Total: 10}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	records, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("want 3 records after trim, got %d", len(records))
	}
	if records[0].Title != "game 4" {
		t.Errorf("newest kept: got %q", records[0].Title)
	}
	if records[2].Title != "game 2" {
		t.Errorf("oldest kept: got %q", records[2].Title)
	}
}

func TestRecordRejectsBadScores(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemKV())

	if _, err := svc.Record(ctx, 1, Entry{Score: 11, Total: 10}); err == nil {
		t.Error("score above total: want error")
	}
	if _, err := svc.Record(ctx, 1, Entry{Score: -1, Total: 10}); err == nil {
		t.Error("negative score: want error")
	}
	if _, err := svc.Record(ctx, 1, Entry{Score: 0, Total: 0}); err == nil {
		t.Error("zero total: want error")
	}
}

func TestListCorruptDataReadsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemKV()
	if err := kv.Set(ctx, historyKey(1), "{not json"); err != nil {
		t.Fatal(err)
	}
	svc := NewService(kv)
	records, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("corrupt data: want empty history, got %d records", len(records))
	}
}

func TestHistoryIsPerUser(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemKV())

	if _, err := svc.Record(ctx, 1, Entry{Title: "mine", Score: 5, Total: 10}); err != nil {
		t.Fatal(err)
	}
	records, err := svc.List(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Errorf("user 2 sees user 1's history: %d records", len(records))
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemKV())

	scores := []int{7, 10, 4, 8, 6, 9}
	for _, sc := range scores {
		if _, err := svc.Record(ctx, 1, Entry{Score: sc, Total: 10}); err != nil {
			t.Fatal(err)
		}
	}

	st, err := svc.Stats(ctx, 1)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.GamesPlayed != 6 {
		t.Errorf("games: want 6, got %d", st.GamesPlayed)
	}
	if st.GrammarPoints != 44 {
		t.Errorf("points: want 44, got %d", st.GrammarPoints)
	}
	if st.StudyHours != 1.8 {
		t.Errorf("hours: want 1.8, got %v", st.StudyHours)
	}
	// Earned: played one game, 20+ points, played five games, and one
	// perfect score. Not enough hours for the study-time achievement.
	if st.Achievements != 4 {
		t.Errorf("achievements: want 4, got %d", st.Achievements)
	}
}

func TestStatsEmpty(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemKV())

	st, err := svc.Stats(ctx, 9)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st != (Stats{}) {
		t.Errorf("empty history: want zero stats, got %+v", st)
	}
}

func TestLevelProgress(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemKV())

	// Ratios: 1.0 (N5), 0.9 (N4), 0.8 (N4), 0.6 (N3), 0.4 (N2), 0.3 (N1).
	for _, sc := range []int{10, 9, 8, 6, 4, 3} {
		if _, err := svc.Record(ctx, 1, Entry{Score: sc, Total: 10}); err != nil {
			t.Fatal(err)
		}
	}

	lp, err := svc.LevelProgress(ctx, 1)
	if err != nil {
		t.Fatalf("LevelProgress: %v", err)
	}
	want := LevelProgress{N5: 17, N4: 33, N3: 17, N2: 17, N1: 17}
	if lp != want {
		t.Errorf("want %+v, got %+v", want, lp)
	}
}

func TestLevelProgressEmpty(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemKV())

	lp, err := svc.LevelProgress(ctx, 1)
	if err != nil {
		t.Fatalf("LevelProgress: %v", err)
	}
	if lp != (LevelProgress{}) {
		t.Errorf("empty history: want zero progress, got %+v", lp)
	}
}

func TestPage(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemKV(), WithRetention(50))

	for i := range 25 {
		if _, err := svc.Record(ctx, 1, Entry{Title: fmt.Sprintf("game %d", i), Score: 1, Total: 10}); err != nil {
			t.Fatal(err)
		}
	}

	p1, err := svc.Page(ctx, 1, 1)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if len(p1.Records) != 10 || p1.TotalPages != 3 || p1.Total != 25 {
		t.Errorf("page 1: got %d records, %d pages, %d total", len(p1.Records), p1.TotalPages, p1.Total)
	}
	if p1.Records[0].Title != "game 24" {
		t.Errorf("page 1 starts with newest: got %q", p1.Records[0].Title)
	}

	p3, err := svc.Page(ctx, 1, 3)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if len(p3.Records) != 5 {
		t.Errorf("page 3: want 5 records, got %d", len(p3.Records))
	}

	p9, err := svc.Page(ctx, 1, 9)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if len(p9.Records) != 0 || p9.TotalPages != 3 {
		t.Errorf("past the end: got %d records, %d pages", len(p9.Records), p9.TotalPages)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemKV())

	if _, err := svc.Record(ctx, 1, Entry{Score: 5, Total: 10}); err != nil {
		t.Fatal(err)
	}
	if err := svc.Clear(ctx, 1); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	records, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Errorf("after clear: want empty, got %d", len(records))
	}
}
