package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleUser   = "user"
	RoleAgency = "agency"
	RoleAdmin  = "admin"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	Role         string
	CreatedAt    time.Time
}

// Claims - данные пользователя, извлеченные из токена
type Claims struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

// NewUser создает пользователя с захешированным паролем
func NewUser(email, password, name, role string) (*User, error) {
	if role == "" {
		role = RoleUser
	}
	if role != RoleUser && role != RoleAgency {
		return nil, fmt.Errorf("%w: role %q cannot be self-assigned", ErrInvalidRegistration, role)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRegistration, err)
	}

	return &User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hashedPassword),
		Name:         strings.TrimSpace(name),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// CheckPassword сравнивает пароль с хешем
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

func (u *User) Claims() *Claims {
	return &Claims{UserID: u.ID, Email: u.Email, Role: u.Role}
}

// HasRole проверяет, что роль пользователя входит в список
func (c *Claims) HasRole(roles ...string) bool {
	if c == nil {
		return false
	}
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}

// AuthResult - пользователь и выданный ему токен
type AuthResult struct {
	User  *User
	Token string
}
