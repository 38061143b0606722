package dbhelper

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/ray-remotestate/tableside/database"
	"github.com/ray-remotestate/tableside/models"
)

type RestaurantStore struct {
	db *database.DB
}

func NewRestaurantStore(db *database.DB) *RestaurantStore {
	return &RestaurantStore{db: db}
}

const restaurantColumns = `id, name, description, cuisine, address, phone, email, opening_hours, rating, is_active, created_at`

func (s *RestaurantStore) List() ([]models.Restaurant, error) {
	rows, err := s.db.Query(`
		SELECT ` + restaurantColumns + `
		FROM restaurants
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	restaurants := []models.Restaurant{}
	for rows.Next() {
		r, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, *r)
	}
	return restaurants, rows.Err()
}

func (s *RestaurantStore) Get(id uuid.UUID) (*models.Restaurant, error) {
	row := s.db.QueryRow(`
		SELECT `+restaurantColumns+`
		FROM restaurants
		WHERE id = $1`, id)

	restaurant, err := scanRestaurant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewsFor(id)
	if err != nil {
		return nil, err
	}
	restaurant.Reviews = reviews
	return restaurant, nil
}

func (s *RestaurantStore) Exists(id uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM restaurants WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (s *RestaurantStore) Create(r *models.Restaurant) error {
	address, hours, err := marshalRestaurantDocs(r)
	if err != nil {
		return err
	}

	return s.db.QueryRow(`
		INSERT INTO restaurants (name, description, cuisine, address, phone, email, opening_hours, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, rating, created_at`,
		r.Name, r.Description, r.Cuisine, address, r.Phone, r.Email, hours, r.IsActive).
		Scan(&r.ID, &r.Rating, &r.CreatedAt)
}

func (s *RestaurantStore) Update(id uuid.UUID, r *models.Restaurant) error {
	address, hours, err := marshalRestaurantDocs(r)
	if err != nil {
		return err
	}

	err = s.db.QueryRow(`
		UPDATE restaurants
		SET name = $1, description = $2, cuisine = $3, address = $4, phone = $5,
		    email = $6, opening_hours = $7, is_active = $8
		WHERE id = $9
		RETURNING id, rating, created_at`,
		r.Name, r.Description, r.Cuisine, address, r.Phone, r.Email, hours,
		r.IsActive, id).
		Scan(&r.ID, &r.Rating, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (s *RestaurantStore) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM restaurants WHERE id = $1`, id)
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

// AddReview inserts the review and recomputes the running average rating in
// the same transaction. One review per user per restaurant.
func (s *RestaurantStore) AddReview(review *models.Review) error {
	return s.db.Tx(func(tx *sql.Tx) error {
		err := tx.QueryRow(`
			INSERT INTO reviews (restaurant_id, user_id, rating, comment)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at`,
			review.RestaurantID, review.UserID, review.Rating, review.Comment).
			Scan(&review.ID, &review.CreatedAt)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == "23505" {
				return ErrDuplicateReview
			}
			return err
		}

		rows, err := tx.Query(`
			SELECT rating FROM reviews WHERE restaurant_id = $1`,
			review.RestaurantID)
		if err != nil {
			return err
		}
		defer rows.Close()

		reviews := []models.Review{}
		for rows.Next() {
			var r models.Review
			if err := rows.Scan(&r.Rating); err != nil {
				return err
			}
			reviews = append(reviews, r)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		_, err = tx.Exec(`
			UPDATE restaurants SET rating = $1 WHERE id = $2`,
			models.AverageRating(reviews), review.RestaurantID)
		return err
	})
}

func (s *RestaurantStore) reviewsFor(restaurantID uuid.UUID) ([]models.Review, error) {
	rows, err := s.db.Query(`
		SELECT id, restaurant_id, user_id, rating, comment, created_at
		FROM reviews
		WHERE restaurant_id = $1
		ORDER BY created_at DESC`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.RestaurantID, &r.UserID, &r.Rating,
			&r.Comment, &r.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func scanRestaurant(row rowScanner) (*models.Restaurant, error) {
	var r models.Restaurant
	var address, hours []byte
	err := row.Scan(&r.ID, &r.Name, &r.Description, &r.Cuisine, &address,
		&r.Phone, &r.Email, &hours, &r.Rating, &r.IsActive, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(address, &r.Address); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(hours, &r.OpeningHours); err != nil {
		return nil, err
	}
	return &r, nil
}

func marshalRestaurantDocs(r *models.Restaurant) (address, hours []byte, err error) {
	address, err = json.Marshal(r.Address)
	if err != nil {
		return nil, nil, err
	}
	if r.OpeningHours == nil {
		r.OpeningHours = models.OpeningHours{}
	}
	hours, err = json.Marshal(r.OpeningHours)
	if err != nil {
		return nil, nil, err
	}
	return address, hours, nil
}
