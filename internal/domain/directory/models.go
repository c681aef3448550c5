package directory

import "time"

type User struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	DepartmentID   string     `json:"departmentId,omitempty"`
	ManagerID      string     `json:"managerId,omitempty"`
	EmployeeNumber string     `json:"employeeNumber,omitempty"`
	Phone          string     `json:"phone,omitempty"`
	HireDate       *time.Time `json:"hireDate,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func (u User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	return u.FirstName + " " + u.LastName
}

// UserRef is the slice of a user other domains need for authorization.
type UserRef struct {
	ID        string
	Role      string
	ManagerID string
}

type Department struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}
