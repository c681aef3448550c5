package ratings

const (
	QualityExcellent    = "excellent"
	QualityGood         = "good"
	QualityAverage      = "average"
	QualityBelowAverage = "below_average"
	QualityPoor         = "poor"

	TimelinessOnTime       = "on_time"
	TimelinessSlightlyLate = "slightly_late"
	TimelinessLate         = "late"
	TimelinessVeryLate     = "very_late"
)

var (
	QualityLevels    = []string{QualityExcellent, QualityGood, QualityAverage, QualityBelowAverage, QualityPoor}
	TimelinessLevels = []string{TimelinessOnTime, TimelinessSlightlyLate, TimelinessLate, TimelinessVeryLate}
)
