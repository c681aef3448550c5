package appraisal

import "appraise/internal/domain/ratings"

// RatingSample is the slice of a performance rating the aggregator consumes.
type RatingSample struct {
	Quality    string
	Timeliness string
	Overall    float64
}

type Scores struct {
	OverallPercentage   float64
	TaskCompletionScore float64
	QualityScore        float64
	TimelinessScore     float64
}

var qualityScores = map[string]float64{
	ratings.QualityExcellent:    100,
	ratings.QualityGood:         80,
	ratings.QualityAverage:      60,
	ratings.QualityBelowAverage: 40,
	ratings.QualityPoor:         20,
}

var timelinessScores = map[string]float64{
	ratings.TimelinessOnTime:       100,
	ratings.TimelinessSlightlyLate: 80,
	ratings.TimelinessLate:         60,
	ratings.TimelinessVeryLate:     40,
}

// ComputeScores derives the four appraisal scores from the employee's rating
// history and task counts. It is a pure function: recomputing with unchanged
// inputs yields identical scores. The four results are independent means;
// overall is its own average, not a blend of the other three.
func ComputeScores(samples []RatingSample, tasksTotal, tasksCompleted int) Scores {
	var s Scores

	if len(samples) > 0 {
		var overall, quality, timeliness float64
		for _, sample := range samples {
			overall += sample.Overall
			quality += qualityScores[sample.Quality]
			timeliness += timelinessScores[sample.Timeliness]
		}
		count := float64(len(samples))
		s.OverallPercentage = overall / count
		s.QualityScore = quality / count
		s.TimelinessScore = timeliness / count
	}

	if tasksTotal > 0 {
		s.TaskCompletionScore = 100 * float64(tasksCompleted) / float64(tasksTotal)
	}

	return s
}
