package domain

import (
	"time"

	"github.com/google/uuid"
)

type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "Active"
	EmployeeStatusInactive EmployeeStatus = "Inactive"
)

type Employee struct {
	ID            uuid.UUID      `json:"id"`
	OwnerID       int64          `json:"userId"`
	Name          string         `json:"name"`
	Position      string         `json:"position"`
	Department    string         `json:"department"`
	Email         string         `json:"email,omitempty"`
	Salary        float64        `json:"salary"`
	Status        EmployeeStatus `json:"status"`
	DateOfJoining time.Time      `json:"dateOfJoining"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}
