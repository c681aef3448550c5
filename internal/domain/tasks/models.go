package tasks

import "time"

type Task struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	AssignedTo    string     `json:"assignedTo"`
	AssignedBy    string     `json:"assignedBy"`
	Priority      string     `json:"priority"`
	Status        string     `json:"status"`
	DueDate       time.Time  `json:"dueDate"`
	CompletedDate *time.Time `json:"completedDate,omitempty"`
	ArtifactRef   string     `json:"artifactRef,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type TaskInput struct {
	Title       string
	Description string
	AssignedTo  string
	Priority    string
	DueDate     time.Time
}
