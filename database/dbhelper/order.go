package dbhelper

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/ray-remotestate/tableside/database"
	"github.com/ray-remotestate/tableside/models"
)

type OrderStore struct {
	db *database.DB
}

func NewOrderStore(db *database.DB) *OrderStore {
	return &OrderStore{db: db}
}

const orderColumns = `id, restaurant_id, user_id, table_number, total, status, payment_method, payment_status, notes, customer_name, customer_phone, created_at, updated_at`

// Create writes the order and its line items in one transaction. The total
// is always recomputed from the items; whatever the caller set is ignored.
func (s *OrderStore) Create(order *models.Order) error {
	order.Total = models.OrderTotal(order.Items)
	if order.Status == "" {
		order.Status = models.StatusPending
	}
	if order.PaymentStatus == "" {
		order.PaymentStatus = models.PaymentPending
	}

	return s.db.Tx(func(tx *sql.Tx) error {
		err := tx.QueryRow(`
			INSERT INTO orders (restaurant_id, user_id, table_number, total, status, payment_method, payment_status, notes, customer_name, customer_phone)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id, created_at, updated_at`,
			order.RestaurantID, order.UserID, order.TableNumber, order.Total,
			order.Status, order.PaymentMethod, order.PaymentStatus,
			order.Notes, order.CustomerName, order.CustomerPhone).
			Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return err
		}

		for i := range order.Items {
			item := &order.Items[i]
			item.OrderID = order.ID
			err := tx.QueryRow(`
				INSERT INTO order_items (order_id, menu_item_id, name, quantity, price, special_option)
				VALUES ($1, $2, $3, $4, $5, $6)
				RETURNING id`,
				item.OrderID, item.MenuItemID, item.Name, item.Quantity,
				item.Price, item.SpecialOption).
				Scan(&item.ID)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// List returns every order, newest first, with line items attached.
func (s *OrderStore) List() ([]models.Order, error) {
	rows, err := s.db.Query(`
		SELECT ` + orderColumns + `
		FROM orders
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}
	return s.attachItems(orders)
}

func (s *OrderStore) ListByUser(userID uuid.UUID) ([]models.Order, error) {
	rows, err := s.db.Query(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}
	return s.attachItems(orders)
}

func (s *OrderStore) Get(id uuid.UUID) (*models.Order, error) {
	row := s.db.QueryRow(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1`, id)

	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := s.itemsFor([]uuid.UUID{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]
	if order.Items == nil {
		order.Items = []models.OrderItem{}
	}
	return order, nil
}

func (s *OrderStore) UpdateStatus(id uuid.UUID, status models.OrderStatus) error {
	res, err := s.db.Exec(`
		UPDATE orders SET status = $1, updated_at = now()
		WHERE id = $2`, status, id)
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

func (s *OrderStore) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM orders WHERE id = $1`, id)
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

func (s *OrderStore) attachItems(orders []models.Order) ([]models.Order, error) {
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]uuid.UUID, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	items, err := s.itemsFor(ids)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		orders[i].Items = items[orders[i].ID]
		if orders[i].Items == nil {
			orders[i].Items = []models.OrderItem{}
		}
	}
	return orders, nil
}

func (s *OrderStore) itemsFor(orderIDs []uuid.UUID) (map[uuid.UUID][]models.OrderItem, error) {
	raw := make([]string, len(orderIDs))
	for i, id := range orderIDs {
		raw[i] = id.String()
	}

	rows, err := s.db.Query(`
		SELECT id, order_id, menu_item_id, name, quantity, price, special_option
		FROM order_items
		WHERE order_id = ANY($1)`, pq.Array(raw))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[uuid.UUID][]models.OrderItem)
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID,
			&item.Name, &item.Quantity, &item.Price, &item.SpecialOption); err != nil {
			return nil, err
		}
		items[item.OrderID] = append(items[item.OrderID], item)
	}
	return items, rows.Err()
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var order models.Order
	err := row.Scan(&order.ID, &order.RestaurantID, &order.UserID,
		&order.TableNumber, &order.Total, &order.Status, &order.PaymentMethod,
		&order.PaymentStatus, &order.Notes, &order.CustomerName,
		&order.CustomerPhone, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func scanOrders(rows *sql.Rows) ([]models.Order, error) {
	orders := []models.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}
