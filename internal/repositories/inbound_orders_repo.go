package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"stowage/internal/common"
	"stowage/internal/models"
)

// InboundOrderFilter narrows order listings. Zero values mean "any".
type InboundOrderFilter struct {
	WarehouseID    uuid.UUID
	Status         models.InboundStatus
	ExternalNumber string
	Limit          int
	Offset         int
}

// InboundOrderRepository stores orders, their lines and the receipt ledger.
type InboundOrderRepository interface {
	WithTx(tx pgx.Tx) InboundOrderRepository

	Create(ctx context.Context, order *models.InboundOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.InboundOrder, error)

	// GetByIDForUpdate loads the order and its lines with row locks held until
	// the surrounding transaction ends. Mutating flows must read through this
	// so concurrent events on the same order serialize instead of overwriting
	// each other's received quantities.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.InboundOrder, error)

	List(ctx context.Context, filter InboundOrderFilter) ([]*models.InboundOrder, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.InboundStatus) error
	InsertLine(ctx context.Context, line *models.InboundOrderLine) error
	UpdateLine(ctx context.Context, line *models.InboundOrderLine) error
	InsertReceipt(ctx context.Context, receipt *models.InboundReceipt) error
	ListReceipts(ctx context.Context, orderID uuid.UUID) ([]*models.InboundReceipt, error)
}

type inboundOrderRepo struct {
	db DB
}

func NewInboundOrderRepository(db DB) InboundOrderRepository {
	return &inboundOrderRepo{db: db}
}

func (r *inboundOrderRepo) WithTx(tx pgx.Tx) InboundOrderRepository {
	return &inboundOrderRepo{db: tx}
}

// Create inserts the order and all of its lines. Callers that need the insert
// to be atomic run it through WithTx.
func (r *inboundOrderRepo) Create(ctx context.Context, order *models.InboundOrder) error {
	orderQuery := `
		INSERT INTO inbound_orders (id, external_number, warehouse_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, orderQuery, order.ID, order.ExternalNumber, order.WarehouseID, order.Status)
	if err != nil {
		if isUniqueViolation(err) {
			return common.NewConflictError("inbound order already exists: " + order.ExternalNumber)
		}
		return err
	}

	lineQuery := `
		INSERT INTO inbound_order_lines (id, order_id, item_id, expected_qty, received_qty, location_id, line_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, line := range order.Lines {
		_, err := r.db.Exec(ctx, lineQuery,
			line.ID, order.ID, line.ItemID, line.ExpectedQty, line.ReceivedQty, line.LocationID, line.LineStatus)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *inboundOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.InboundOrder, error) {
	return r.getByID(ctx, id, false)
}

func (r *inboundOrderRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.InboundOrder, error) {
	return r.getByID(ctx, id, true)
}

func (r *inboundOrderRepo) getByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*models.InboundOrder, error) {
	order := &models.InboundOrder{}
	orderQuery := `
		SELECT id, external_number, warehouse_id, status, created_at, updated_at
		FROM inbound_orders
		WHERE id = $1
	`
	if forUpdate {
		orderQuery += ` FOR UPDATE`
	}
	err := r.db.QueryRow(ctx, orderQuery, id).Scan(
		&order.ID, &order.ExternalNumber, &order.WarehouseID,
		&order.Status, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	lines, err := r.loadLines(ctx, id, forUpdate)
	if err != nil {
		return nil, err
	}
	order.Lines = lines
	return order, nil
}

func (r *inboundOrderRepo) loadLines(ctx context.Context, orderID uuid.UUID, forUpdate bool) ([]*models.InboundOrderLine, error) {
	query := `
		SELECT id, order_id, item_id, expected_qty, received_qty, location_id, line_status
		FROM inbound_order_lines
		WHERE order_id = $1
		ORDER BY id
	`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []*models.InboundOrderLine
	for rows.Next() {
		line := &models.InboundOrderLine{}
		if err := rows.Scan(
			&line.ID, &line.OrderID, &line.ItemID, &line.ExpectedQty,
			&line.ReceivedQty, &line.LocationID, &line.LineStatus,
		); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (r *inboundOrderRepo) List(ctx context.Context, filter InboundOrderFilter) ([]*models.InboundOrder, error) {
	limit, offset := common.ValidatePaginationParams(filter.Limit, filter.Offset)
	query := `
		SELECT id, external_number, warehouse_id, status, created_at, updated_at
		FROM inbound_orders
		WHERE ($1::uuid IS NULL OR warehouse_id = $1)
		  AND ($2::text IS NULL OR status = $2)
		  AND ($3::text IS NULL OR external_number ILIKE '%' || $3 || '%')
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5
	`
	var whArg, statusArg, extArg any
	if filter.WarehouseID != uuid.Nil {
		whArg = filter.WarehouseID
	}
	if filter.Status != "" {
		statusArg = string(filter.Status)
	}
	if filter.ExternalNumber != "" {
		extArg = filter.ExternalNumber
	}

	rows, err := r.db.Query(ctx, query, whArg, statusArg, extArg, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.InboundOrder
	for rows.Next() {
		order := &models.InboundOrder{}
		if err := rows.Scan(
			&order.ID, &order.ExternalNumber, &order.WarehouseID,
			&order.Status, &order.CreatedAt, &order.UpdatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, order := range orders {
		lines, err := r.loadLines(ctx, order.ID, false)
		if err != nil {
			return nil, err
		}
		order.Lines = lines
	}
	return orders, nil
}

func (r *inboundOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.InboundStatus) error {
	query := `
		UPDATE inbound_orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`
	tag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("inbound order")
	}
	return nil
}

func (r *inboundOrderRepo) InsertLine(ctx context.Context, line *models.InboundOrderLine) error {
	query := `
		INSERT INTO inbound_order_lines (id, order_id, item_id, expected_qty, received_qty, location_id, line_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		line.ID, line.OrderID, line.ItemID, line.ExpectedQty, line.ReceivedQty, line.LocationID, line.LineStatus)
	return err
}

func (r *inboundOrderRepo) UpdateLine(ctx context.Context, line *models.InboundOrderLine) error {
	query := `
		UPDATE inbound_order_lines
		SET received_qty = $1, line_status = $2, location_id = $3
		WHERE id = $4
	`
	tag, err := r.db.Exec(ctx, query, line.ReceivedQty, line.LineStatus, line.LocationID, line.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("inbound order line")
	}
	return nil
}

func (r *inboundOrderRepo) InsertReceipt(ctx context.Context, receipt *models.InboundReceipt) error {
	query := `
		INSERT INTO inbound_receipts (id, order_id, line_id, tare_id, item_id, quantity, condition, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	_, err := r.db.Exec(ctx, query,
		receipt.ID, receipt.OrderID, receipt.LineID, receipt.TareID,
		receipt.ItemID, receipt.Quantity, receipt.Condition)
	return err
}

func (r *inboundOrderRepo) ListReceipts(ctx context.Context, orderID uuid.UUID) ([]*models.InboundReceipt, error) {
	query := `
		SELECT id, order_id, line_id, tare_id, item_id, quantity, condition, created_at
		FROM inbound_receipts
		WHERE order_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var receipts []*models.InboundReceipt
	for rows.Next() {
		receipt := &models.InboundReceipt{}
		if err := rows.Scan(
			&receipt.ID, &receipt.OrderID, &receipt.LineID, &receipt.TareID,
			&receipt.ItemID, &receipt.Quantity, &receipt.Condition, &receipt.CreatedAt,
		); err != nil {
			return nil, err
		}
		receipts = append(receipts, receipt)
	}
	return receipts, rows.Err()
}
