package dbhelper

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ray-remotestate/tableside/database"
	"github.com/ray-remotestate/tableside/models"
)

type UserStore struct {
	db *database.DB
}

func NewUserStore(db *database.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(name, email, hashedPassword string, role models.Role) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.db.QueryRow(`
		INSERT INTO users (name, email, password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		name, email, hashedPassword, role).Scan(&id)
	return id, err
}

func (s *UserStore) Exists(email string) (bool, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM users WHERE LOWER(email) = LOWER($1)`, email).Scan(&count)
	return count > 0, err
}

func (s *UserStore) GetByEmail(email string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRow(`
		SELECT id, name, email, password, role, created_at FROM users
		WHERE LOWER(email) = LOWER($1)`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByPassword authenticates and returns the matching user.
func (s *UserStore) GetByPassword(email, password string) (*models.User, error) {
	user, err := s.GetByEmail(email)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, fmt.Errorf("incorrect password")
	}

	return user, nil
}
