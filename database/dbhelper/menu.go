package dbhelper

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/ray-remotestate/tableside/database"
	"github.com/ray-remotestate/tableside/models"
)

type MenuStore struct {
	db *database.DB
}

func NewMenuStore(db *database.DB) *MenuStore {
	return &MenuStore{db: db}
}

const menuItemColumns = `id, name, description, price, category, image, special, special_options, is_available, created_at, updated_at`

// ListAvailable returns available items sorted by category then name.
func (s *MenuStore) ListAvailable() ([]models.MenuItem, error) {
	rows, err := s.db.Query(`
		SELECT ` + menuItemColumns + `
		FROM menu_items
		WHERE is_available = true
		ORDER BY category, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMenuItems(rows)
}

func (s *MenuStore) ListByCategory(category models.Category) ([]models.MenuItem, error) {
	rows, err := s.db.Query(`
		SELECT `+menuItemColumns+`
		FROM menu_items
		WHERE category = $1 AND is_available = true
		ORDER BY name`, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMenuItems(rows)
}

func (s *MenuStore) Get(id uuid.UUID) (*models.MenuItem, error) {
	row := s.db.QueryRow(`
		SELECT `+menuItemColumns+`
		FROM menu_items
		WHERE id = $1`, id)

	item, err := scanMenuItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *MenuStore) Create(item *models.MenuItem) error {
	options, err := json.Marshal(optionsOrEmpty(item.SpecialOptions))
	if err != nil {
		return err
	}

	return s.db.QueryRow(`
		INSERT INTO menu_items (name, description, price, category, image, special, special_options, is_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		item.Name, item.Description, item.Price, item.Category, item.Image,
		item.Special, options, item.IsAvailable).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (s *MenuStore) Update(id uuid.UUID, item *models.MenuItem) error {
	options, err := json.Marshal(optionsOrEmpty(item.SpecialOptions))
	if err != nil {
		return err
	}

	err = s.db.QueryRow(`
		UPDATE menu_items
		SET name = $1, description = $2, price = $3, category = $4, image = $5,
		    special = $6, special_options = $7, is_available = $8, updated_at = now()
		WHERE id = $9
		RETURNING id, created_at, updated_at`,
		item.Name, item.Description, item.Price, item.Category, item.Image,
		item.Special, options, item.IsAvailable, id).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (s *MenuStore) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMenuItem(row rowScanner) (*models.MenuItem, error) {
	var item models.MenuItem
	var options []byte
	err := row.Scan(&item.ID, &item.Name, &item.Description, &item.Price,
		&item.Category, &item.Image, &item.Special, &options,
		&item.IsAvailable, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(options, &item.SpecialOptions); err != nil {
		return nil, err
	}
	return &item, nil
}

func scanMenuItems(rows *sql.Rows) ([]models.MenuItem, error) {
	items := []models.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func optionsOrEmpty(options []string) []string {
	if options == nil {
		return []string{}
	}
	return options
}
