package services

import (
	"math"
	"sort"
	"time"

	"frontline-rating-server/models"
)

// The aggregation engine is the single place rating statistics are computed.
// Every dashboard and the report exporter feed it a pre-scoped row set; none
// of them reimplement the arithmetic. Averages are always pooled: total of
// all individual question scores divided by the count of all scores, never
// an average of per-rating averages.

// RatingRollup is the aggregate shape shared by all dashboards
type RatingRollup struct {
	TotalRatings           int     `json:"total_ratings"`
	AverageRating          float64 `json:"average_rating"`
	SatisfactionPercentage int     `json:"satisfaction_percentage"`
}

// TrendBucket is one calendar day of rating activity. Days without ratings
// are omitted, matching the dashboards' sparse charts.
type TrendBucket struct {
	Date      string  `json:"date"`
	Count     int     `json:"count"`
	AvgRating float64 `json:"avg_rating"`
}

// AgentWithRatings pairs an agent with the ratings in the caller's scope and period
type AgentWithRatings struct {
	Agent   models.User
	Ratings []models.Rating
}

// AgentPerformance is one row of a top-performer or per-agent breakdown
type AgentPerformance struct {
	AgentID                uint    `json:"agent_id"`
	Name                   string  `json:"name"`
	DepartmentName         string  `json:"department_name,omitempty"`
	TotalRatings           int     `json:"total_ratings"`
	AverageRating          float64 `json:"average_rating"`
	SatisfactionPercentage int     `json:"satisfaction_percentage"`
}

// AverageScore returns the mean of the given response scores, 0 for an empty set
func AverageScore(responses []models.Response) float64 {
	if len(responses) == 0 {
		return 0
	}
	total := 0
	for _, r := range responses {
		total += r.Score
	}
	return float64(total) / float64(len(responses))
}

// SatisfactionPercentage maps an average on the 0..5 scale to 0..100
func SatisfactionPercentage(avg float64) int {
	return int(math.Round(avg / 5 * 100))
}

// Rollup computes the pooled aggregate over a scoped set of ratings
func Rollup(ratings []models.Rating) RatingRollup {
	totalScore := 0
	totalResponses := 0
	for _, rating := range ratings {
		for _, r := range rating.Responses {
			totalScore += r.Score
			totalResponses++
		}
	}

	avg := 0.0
	if totalResponses > 0 {
		avg = float64(totalScore) / float64(totalResponses)
	}

	return RatingRollup{
		TotalRatings:           len(ratings),
		AverageRating:          avg,
		SatisfactionPercentage: SatisfactionPercentage(avg),
	}
}

// Round1 rounds to one decimal place for dashboard payloads
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// DailyTrend buckets ratings from the last windowDays by UTC calendar date.
// Each bucket's average pools every response score inside the bucket.
func DailyTrend(ratings []models.Rating, windowDays int, now time.Time) []TrendBucket {
	cutoff := now.UTC().AddDate(0, 0, -windowDays)

	type acc struct {
		count          int
		totalScore     int
		totalResponses int
	}
	buckets := make(map[string]*acc)

	for _, rating := range ratings {
		if rating.CreatedAt.Before(cutoff) {
			continue
		}
		date := rating.CreatedAt.UTC().Format("2006-01-02")
		b, ok := buckets[date]
		if !ok {
			b = &acc{}
			buckets[date] = b
		}
		b.count++
		for _, r := range rating.Responses {
			b.totalScore += r.Score
			b.totalResponses++
		}
	}

	dates := make([]string, 0, len(buckets))
	for date := range buckets {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	trend := make([]TrendBucket, 0, len(dates))
	for _, date := range dates {
		b := buckets[date]
		avg := 0.0
		if b.totalResponses > 0 {
			avg = float64(b.totalScore) / float64(b.totalResponses)
		}
		trend = append(trend, TrendBucket{Date: date, Count: b.count, AvgRating: avg})
	}
	return trend
}

// RankTopPerformers computes a rollup per agent, drops agents with no ratings
// in the supplied set, and returns the best `limit` agents. Ties on average
// rating break by total rating count, then agent name.
func RankTopPerformers(agents []AgentWithRatings, limit int) []AgentPerformance {
	performers := make([]AgentPerformance, 0, len(agents))
	for _, a := range agents {
		if len(a.Ratings) == 0 {
			continue
		}
		rollup := Rollup(a.Ratings)
		deptName := ""
		if a.Agent.Department != nil {
			deptName = a.Agent.Department.Name
		}
		performers = append(performers, AgentPerformance{
			AgentID:                a.Agent.ID,
			Name:                   a.Agent.Name,
			DepartmentName:         deptName,
			TotalRatings:           rollup.TotalRatings,
			AverageRating:          rollup.AverageRating,
			SatisfactionPercentage: rollup.SatisfactionPercentage,
		})
	}

	sort.SliceStable(performers, func(i, j int) bool {
		if performers[i].AverageRating != performers[j].AverageRating {
			return performers[i].AverageRating > performers[j].AverageRating
		}
		if performers[i].TotalRatings != performers[j].TotalRatings {
			return performers[i].TotalRatings > performers[j].TotalRatings
		}
		return performers[i].Name < performers[j].Name
	})

	if limit > 0 && len(performers) > limit {
		performers = performers[:limit]
	}
	return performers
}
