package ratings

import "time"

type PerformanceRating struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	ManagerID  string    `json:"managerId"`
	TaskID     string    `json:"taskId,omitempty"`
	Quality    string    `json:"qualityRating"`
	Timeliness string    `json:"timelinessRating"`
	Overall    float64   `json:"overallRating"`
	Remarks    string    `json:"remarks"`
	Keywords   string    `json:"keywords"`
	CreatedAt  time.Time `json:"createdAt"`
}

type RatingInput struct {
	TaskID     string
	Quality    string
	Timeliness string
	Overall    float64
	Remarks    string
	Keywords   string
}
