package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/rosterhq-dev/employee-manager/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var firstNames = []string{
	"Alice", "Brian", "Clara", "Daniel", "Elena", "Felix", "Grace", "Henry",
	"Irene", "Jonas", "Karen", "Liam", "Mona", "Nathan", "Olivia", "Peter",
	"Quinn", "Rosa", "Samuel", "Tina",
}

var lastNames = []string{
	"Anderson", "Baker", "Carter", "Diaz", "Evans", "Foster", "Garcia",
	"Hughes", "Iverson", "Jensen", "Klein", "Lopez", "Morgan", "Nguyen",
	"Olsen", "Parker", "Reyes", "Silva", "Turner", "Walker",
}

var positions = []string{
	"Software Engineer", "QA Engineer", "Product Manager", "Designer",
	"Accountant", "Recruiter", "Sales Representative", "Support Specialist",
}

var departments = []string{
	"R&D", "Engineering", "Finance", "Human Resources", "Sales", "Support",
}

var digits = "0123456789"

func GenerateRandomName() string {
	return firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
}

func GenerateUsernameFromName(name string) string {
	username := strings.ToLower(strings.ReplaceAll(name, " ", "."))

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomAccount(password string) (*domain.Account, error) {
	name := GenerateRandomName()
	username := GenerateUsernameFromName(name)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(passwordHash),
		Role:         domain.RoleUser,
	}

	return account, nil
}

func GenerateRandomEmployee(ownerID int64) *domain.Employee {
	name := GenerateRandomName()

	employee := &domain.Employee{
		OwnerID:    ownerID,
		Name:       name,
		Position:   positions[rand.Intn(len(positions))],
		Department: departments[rand.Intn(len(departments))],
		Salary:     float64(rand.Intn(9000)+1000) * 10,
		Status:     domain.EmployeeStatusActive,
	}

	// roughly a third of the seeded records have no email on file
	if rand.Intn(3) > 0 {
		employee.Email = fmt.Sprintf("%s%d@corp.example.com",
			strings.ToLower(strings.ReplaceAll(name, " ", ".")), rand.Intn(1000))
	}

	return employee
}
