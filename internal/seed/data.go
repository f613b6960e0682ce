package seed

import "github.com/spec-kit/user-service/internal/domain"

// User is one account inserted by the seeding tooling. The first role label
// is treated as the account's primary role, so the admin account lists
// "admin" first.
type User struct {
	Email    string
	Name     string
	Password string
	Roles    []domain.Role
}

// InitialUsers returns the development fixture set: one admin plus a page
// and a half of plain users, enough to exercise pagination.
func InitialUsers() []User {
	return []User{
		{Email: "test1@google.com", Name: "Test One", Password: "Abc123", Roles: []domain.Role{domain.RoleAdmin}},
		{Email: "test2@google.com", Name: "Test Two", Password: "Abc123", Roles: []domain.Role{domain.RoleUser}},
		{Email: "test3@google.com", Name: "Test Three", Password: "Abc123", Roles: []domain.Role{domain.RoleUser}},
		{Email: "test4@google.com", Name: "Test Four", Password: "Abc123", Roles: []domain.Role{domain.RoleUser}},
		{Email: "test5@google.com", Name: "Test Five", Password: "Abc123", Roles: []domain.Role{domain.RoleUser}},
		{Email: "test6@google.com", Name: "Test Six", Password: "Abc123", Roles: []domain.Role{domain.RoleUser}},
		{Email: "test7@google.com", Name: "Test Seven", Password: "Abc123", Roles: []domain.Role{domain.RoleUser}},
		{Email: "test8@google.com", Name: "Test Eight", Password: "Abc123", Roles: []domain.Role{domain.RoleUser}},
		{Email: "test9@google.com", Name: "Test Nine", Password: "Abc123", Roles: []domain.Role{domain.RoleUser}},
		{Email: "test10@google.com", Name: "Test Ten", Password: "Abc123", Roles: []domain.Role{domain.RoleUser}},
		{Email: "test11@google.com", Name: "Test Eleven", Password: "Abc123", Roles: []domain.Role{domain.RoleUser}},
	}
}
