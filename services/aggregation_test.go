package services

import (
	"testing"
	"time"

	"frontline-rating-server/models"
)

func responses(scores ...int) []models.Response {
	out := make([]models.Response, 0, len(scores))
	for i, s := range scores {
		out = append(out, models.Response{QuestionID: uint(i + 1), Score: s})
	}
	return out
}

func TestAverageScore(t *testing.T) {
	if got := AverageScore(nil); got != 0 {
		t.Errorf("empty set: got %v, want 0", got)
	}
	if got := AverageScore(responses(5, 3)); got != 4.0 {
		t.Errorf("scores 5,3: got %v, want 4.0", got)
	}
	if got := AverageScore(responses(1, 1, 1)); got != 1.0 {
		t.Errorf("all ones: got %v, want 1.0", got)
	}
}

func TestSatisfactionPercentage(t *testing.T) {
	cases := []struct {
		avg  float64
		want int
	}{
		{5.0, 100},
		{0, 0},
		{2.5, 50},
		{4.0, 80},
		{3.3, 66},
	}
	for _, tc := range cases {
		if got := SatisfactionPercentage(tc.avg); got != tc.want {
			t.Errorf("SatisfactionPercentage(%v) = %d, want %d", tc.avg, got, tc.want)
		}
	}
}

func TestRollupPoolsAllResponses(t *testing.T) {
	// One rating with two high scores, one rating with a single low score.
	// Pooled: (5+5+1)/3, not the 4.0 an average-of-averages would give.
	ratings := []models.Rating{
		{Responses: responses(5, 5)},
		{Responses: responses(1)},
	}

	rollup := Rollup(ratings)
	if rollup.TotalRatings != 2 {
		t.Errorf("TotalRatings = %d, want 2", rollup.TotalRatings)
	}
	want := 11.0 / 3.0
	if rollup.AverageRating != want {
		t.Errorf("AverageRating = %v, want %v", rollup.AverageRating, want)
	}
	if rollup.SatisfactionPercentage != 73 {
		t.Errorf("SatisfactionPercentage = %d, want 73", rollup.SatisfactionPercentage)
	}
}

func TestRollupEmpty(t *testing.T) {
	rollup := Rollup(nil)
	if rollup.TotalRatings != 0 || rollup.AverageRating != 0 || rollup.SatisfactionPercentage != 0 {
		t.Errorf("empty rollup = %+v, want zeros", rollup)
	}
}

func TestDailyTrendBucketsByUTCDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// Two ratings two minutes apart across a UTC midnight land in different buckets.
	ratings := []models.Rating{
		{CreatedAt: time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC), Responses: responses(4)},
		{CreatedAt: time.Date(2026, 3, 2, 0, 1, 0, 0, time.UTC), Responses: responses(2)},
	}

	trend := DailyTrend(ratings, 30, now)
	if len(trend) != 2 {
		t.Fatalf("got %d buckets, want 2: %+v", len(trend), trend)
	}
	if trend[0].Date != "2026-03-01" || trend[1].Date != "2026-03-02" {
		t.Errorf("bucket dates = %q, %q", trend[0].Date, trend[1].Date)
	}
	if trend[0].AvgRating != 4.0 || trend[1].AvgRating != 2.0 {
		t.Errorf("bucket averages = %v, %v", trend[0].AvgRating, trend[1].AvgRating)
	}
}

func TestDailyTrendOmitsEmptyDaysAndOldRatings(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	ratings := []models.Rating{
		{CreatedAt: now.AddDate(0, 0, -40), Responses: responses(5)}, // outside window
		{CreatedAt: now.AddDate(0, 0, -5), Responses: responses(3)},
		{CreatedAt: now.AddDate(0, 0, -1), Responses: responses(4)},
	}

	trend := DailyTrend(ratings, 30, now)
	if len(trend) != 2 {
		t.Fatalf("got %d buckets, want 2 (sparse, no zero fill): %+v", len(trend), trend)
	}
	for _, bucket := range trend {
		if bucket.Count == 0 {
			t.Errorf("bucket %s has zero count", bucket.Date)
		}
	}
}

func TestDailyTrendPoolsWithinBucket(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	day := time.Date(2026, 3, 8, 9, 0, 0, 0, time.UTC)

	ratings := []models.Rating{
		{CreatedAt: day, Responses: responses(5, 5)},
		{CreatedAt: day.Add(2 * time.Hour), Responses: responses(1)},
	}

	trend := DailyTrend(ratings, 30, now)
	if len(trend) != 1 {
		t.Fatalf("got %d buckets, want 1", len(trend))
	}
	if trend[0].Count != 2 {
		t.Errorf("Count = %d, want 2", trend[0].Count)
	}
	want := 11.0 / 3.0
	if trend[0].AvgRating != want {
		t.Errorf("AvgRating = %v, want pooled %v", trend[0].AvgRating, want)
	}
}

func TestRankTopPerformersExcludesUnrated(t *testing.T) {
	agents := []AgentWithRatings{
		{Agent: models.User{ID: 1, Name: "Ama"}, Ratings: []models.Rating{{Responses: responses(5)}}},
		{Agent: models.User{ID: 2, Name: "Kwame"}, Ratings: nil},
	}

	top := RankTopPerformers(agents, 10)
	if len(top) != 1 {
		t.Fatalf("got %d performers, want 1", len(top))
	}
	if top[0].AgentID != 1 {
		t.Errorf("AgentID = %d, want 1", top[0].AgentID)
	}
}

func TestRankTopPerformersTiebreak(t *testing.T) {
	// Same 4.0 average. More ratings wins; equal counts fall back to name.
	agents := []AgentWithRatings{
		{Agent: models.User{ID: 1, Name: "Zoe"}, Ratings: []models.Rating{{Responses: responses(4)}}},
		{Agent: models.User{ID: 2, Name: "Ama"}, Ratings: []models.Rating{
			{Responses: responses(4)},
			{Responses: responses(4)},
		}},
		{Agent: models.User{ID: 3, Name: "Ben"}, Ratings: []models.Rating{{Responses: responses(4)}}},
	}

	top := RankTopPerformers(agents, 10)
	if len(top) != 3 {
		t.Fatalf("got %d performers, want 3", len(top))
	}
	if top[0].AgentID != 2 {
		t.Errorf("first = %d (more ratings wins the tie), want 2", top[0].AgentID)
	}
	if top[1].Name != "Ben" || top[2].Name != "Zoe" {
		t.Errorf("name tiebreak order = %q, %q, want Ben, Zoe", top[1].Name, top[2].Name)
	}
}

func TestRankTopPerformersLimit(t *testing.T) {
	agents := []AgentWithRatings{
		{Agent: models.User{ID: 1, Name: "A"}, Ratings: []models.Rating{{Responses: responses(5)}}},
		{Agent: models.User{ID: 2, Name: "B"}, Ratings: []models.Rating{{Responses: responses(4)}}},
		{Agent: models.User{ID: 3, Name: "C"}, Ratings: []models.Rating{{Responses: responses(3)}}},
	}

	top := RankTopPerformers(agents, 2)
	if len(top) != 2 {
		t.Fatalf("got %d performers, want 2", len(top))
	}
	if top[0].AgentID != 1 || top[1].AgentID != 2 {
		t.Errorf("order = %d, %d, want 1, 2", top[0].AgentID, top[1].AgentID)
	}
}

func TestRound1(t *testing.T) {
	if got := Round1(3.666666); got != 3.7 {
		t.Errorf("Round1(3.666666) = %v, want 3.7", got)
	}
	if got := Round1(4.0); got != 4.0 {
		t.Errorf("Round1(4.0) = %v, want 4.0", got)
	}
}
