package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/zestotech/cost-estimator/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var firstNames = []string{
	"Ahmed", "Fatima", "Omar", "Layla", "Hassan", "Mariam", "Khalid", "Noor",
	"James", "Sarah", "David", "Priya", "Rajesh", "Anita", "Carlos", "Elena",
}

var lastNames = []string{
	"Khan", "Haddad", "Mansour", "Farouk", "Said", "Patel", "Sharma", "Fernandes",
	"Smith", "Costa", "Silva", "Reyes", "Nair", "Iqbal", "Aziz", "Rahman",
}

var roles = []domain.Role{
	domain.RoleAdmin,
	domain.RoleManager,
	domain.RoleEstimator,
	domain.RoleViewer,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

var digits = "0123456789"

func GenerateRandomUsername() string {
	first := strings.ToLower(firstNames[rand.Intn(len(firstNames))])
	last := strings.ToLower(lastNames[rand.Intn(len(lastNames))])

	username := first + "." + last
	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string) (*domain.User, error) {
	username := GenerateRandomUsername()
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		Email:        username + "@zestotech.com",
		Role:         GenerateRandomRole(),
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var companySuffixes = []string{"Contracting", "Construction", "Builders", "Developments", "Engineering"}

func GenerateRandomCustomer() *domain.Customer {
	name := lastNames[rand.Intn(len(lastNames))] + " " + companySuffixes[rand.Intn(len(companySuffixes))]

	return &domain.Customer{
		Name:    name,
		Email:   strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		Phone:   fmt.Sprintf("+971 50 %03d %04d", rand.Intn(1000), rand.Intn(10000)),
		Address: "Dubai, UAE",
	}
}
