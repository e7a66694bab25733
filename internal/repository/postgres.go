package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/chai-gali/chai-gali-orders-service/internal/errors"
	"github.com/chai-gali/chai-gali-orders-service/internal/logging"
	"github.com/chai-gali/chai-gali-orders-service/internal/models"
)

const uniqueViolation = "23505"

// PostgresOrderRepository stores orders and contact messages in PostgreSQL.
type PostgresOrderRepository struct {
	db     *sql.DB
	logger *logging.LoggerV2
}

var (
	_ OrderRepository   = (*PostgresOrderRepository)(nil)
	_ ContactRepository = (*PostgresOrderRepository)(nil)
)

// NewPostgresOrderRepository creates a new PostgreSQL order repository.
func NewPostgresOrderRepository(db *sql.DB, logger *logging.LoggerV2) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		db:     db,
		logger: logger,
	}
}

const orderColumns = `
	id, status, full_name, email, phone, tea_type, tea_label, unit_price,
	quantity, temperature, addons, addons_subtotal, delivery, delivery_charge,
	total, created_at
`

// Create inserts a new order.
func (r *PostgresOrderRepository) Create(ctx context.Context, order *models.Order) error {
	r.logger.Debug("Creating order", logging.Fields{"order_id": order.ID})

	addOnsJSON, err := json.Marshal(order.AddOns)
	if err != nil {
		return err
	}

	query := `INSERT INTO tea_orders (` + orderColumns + `) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
	)`

	_, err = r.db.ExecContext(ctx, query,
		order.ID,
		order.Status,
		order.FullName,
		order.Email,
		order.Phone,
		order.TeaType,
		order.TeaLabel,
		order.UnitPrice,
		order.Quantity,
		order.Temperature,
		addOnsJSON,
		order.AddOnsSubtotal,
		order.Delivery,
		order.DeliveryCharge,
		order.Total,
		order.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("order %s already exists: %w", order.ID, err)
		}
		r.logger.Error("Failed to create order", logging.Fields{
			"order_id": order.ID,
			"error":    err.Error(),
		})
		return err
	}

	r.logger.Info("Order created successfully", logging.Fields{
		"order_id": order.ID,
		"total":    order.Total,
	})
	return nil
}

// GetByID retrieves an order by its identifier.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	r.logger.Debug("Fetching order by ID", logging.Fields{"order_id": id})

	query := `SELECT ` + orderColumns + ` FROM tea_orders WHERE id = $1`

	order, err := r.scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to fetch order", logging.Fields{
			"order_id": id,
			"error":    err.Error(),
		})
		return nil, err
	}

	return order, nil
}

// List returns one page of a customer's orders, newest first, and the total
// number of orders for that customer.
func (r *PostgresOrderRepository) List(ctx context.Context, filter *models.OrderListFilter) ([]*models.Order, int, error) {
	r.logger.Debug("Listing orders", logging.Fields{
		"email":  filter.Email,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})

	email := strings.ToLower(strings.TrimSpace(filter.Email))

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tea_orders WHERE lower(email) = $1`, email,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + orderColumns + ` FROM tea_orders
		WHERE lower(email) = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, email, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := make([]*models.Order, 0)
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// CreateContact stores a contact form submission.
func (r *PostgresOrderRepository) CreateContact(ctx context.Context, msg *models.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (id, name, email, phone, subject, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		msg.ID,
		msg.Name,
		msg.Email,
		sql.NullString{String: msg.Phone, Valid: msg.Phone != ""},
		msg.Subject,
		msg.Message,
		msg.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to store contact message", logging.Fields{
			"contact_id": msg.ID,
			"error":      err.Error(),
		})
		return err
	}

	r.logger.Info("Contact message stored", logging.Fields{"contact_id": msg.ID})
	return nil
}

// Ping checks the database connection.
func (r *PostgresOrderRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *PostgresOrderRepository) scanOrder(row rowScanner) (*models.Order, error) {
	var order models.Order
	var addOnsJSON []byte

	err := row.Scan(
		&order.ID,
		&order.Status,
		&order.FullName,
		&order.Email,
		&order.Phone,
		&order.TeaType,
		&order.TeaLabel,
		&order.UnitPrice,
		&order.Quantity,
		&order.Temperature,
		&addOnsJSON,
		&order.AddOnsSubtotal,
		&order.Delivery,
		&order.DeliveryCharge,
		&order.Total,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(addOnsJSON) > 0 {
		if err := json.Unmarshal(addOnsJSON, &order.AddOns); err != nil {
			return nil, err
		}
	}

	return &order, nil
}

func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == uniqueViolation
	}
	return false
}

// GenerateOrderID returns a new order identifier.
func GenerateOrderID() string {
	return "ord_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// GenerateContactID returns a new contact message identifier.
func GenerateContactID() string {
	return "msg_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
