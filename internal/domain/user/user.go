package user

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound   = errors.New("user: not found")
	ErrEmailTaken = errors.New("user: email already registered")
	ErrInvalid    = errors.New("user: invalid")
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// ParseRole maps a stored role string onto the closed role set. Anything
// unrecognized degrades to customer; admin is never granted by accident.
func ParseRole(s string) Role {
	if s == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleCustomer
}

// User is an account in the identity store. The password hash never leaves
// the server.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"not null" json:"name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"not null" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

func New(email, name, passwordHash string, role Role) (*User, error) {
	if email == "" || name == "" || passwordHash == "" {
		return nil, ErrInvalid
	}
	return &User{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         ParseRole(string(role)),
		CreatedAt:    time.Now().UTC(),
	}, nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int64, error)
}
