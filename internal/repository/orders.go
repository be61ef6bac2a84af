package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sellerhub/market-mock-api/internal/model"
)

const orderColumns = `mock_order_item_id, seller_id, platform, external_order_id, external_order_item_id,
	       order_datetime, pay_datetime, status_raw, status_normalized,
	       product_amount, shipping_fee, discount_amount, total_payment_amount,
	       pay_method, currency, shop_id, shop_name,
	       buyer_id, buyer_name, buyer_tel, buyer_email,
	       receiver_name, receiver_tel, receiver_zipcode, receiver_address1, receiver_address2,
	       delivery_company, delivery_company_code, tracking_number,
	       quantity, country, memo, raw_payload, created_at, updated_at`

// ListFilter carries the validated query parameters of a listing request.
// Start/End are inclusive day bounds (00:00:00 / 23:59:59.999999999).
type ListFilter struct {
	Start    *time.Time
	End      *time.Time
	Page     int
	PageSize int
}

type OrdersRepository interface {
	ListByPlatform(ctx context.Context, platform model.Platform, sellerID int64, f ListFilter) ([]model.MarketOrder, error)
	InsertBatch(ctx context.Context, orders []model.MarketOrder) error
	ListProgressable(ctx context.Context, limit int) ([]model.MarketOrder, error)
	UpdateProgress(ctx context.Context, o *model.MarketOrder) error
}

type OrdersRepositoryImpl struct {
	db *sqlx.DB
}

func NewOrdersRepository(db *sqlx.DB) *OrdersRepositoryImpl {
	return &OrdersRepositoryImpl{db: db}
}

var _ OrdersRepository = (*OrdersRepositoryImpl)(nil)

// ListByPlatform returns one page of a seller's orders on the given platform,
// ordered by order_datetime then id so paging is stable. A page past the end
// of the data yields an empty slice.
func (r *OrdersRepositoryImpl) ListByPlatform(ctx context.Context, platform model.Platform, sellerID int64, f ListFilter) ([]model.MarketOrder, error) {
	q := `
		SELECT ` + orderColumns + `
		FROM mock_market_orders
		WHERE platform = ? AND seller_id = ?
	`
	args := []any{platform.String(), sellerID}

	if f.Start != nil {
		q += " AND order_datetime >= ?"
		args = append(args, *f.Start)
	}
	if f.End != nil {
		q += " AND order_datetime <= ?"
		args = append(args, *f.End)
	}

	q += " ORDER BY order_datetime ASC, mock_order_item_id ASC LIMIT ? OFFSET ?"
	args = append(args, f.PageSize, (f.Page-1)*f.PageSize)

	rows := []model.MarketOrder{}
	if err := r.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *OrdersRepositoryImpl) InsertBatch(ctx context.Context, orders []model.MarketOrder) error {
	if len(orders) == 0 {
		return nil
	}
	const q = `
INSERT INTO mock_market_orders
    (seller_id, platform, external_order_id, external_order_item_id,
     order_datetime, pay_datetime, status_raw, status_normalized,
     product_amount, shipping_fee, discount_amount, total_payment_amount,
     pay_method, currency, shop_id, shop_name,
     buyer_id, buyer_name, buyer_tel, buyer_email,
     receiver_name, receiver_tel, receiver_zipcode, receiver_address1, receiver_address2,
     delivery_company, delivery_company_code, tracking_number,
     quantity, country, memo, raw_payload)
VALUES
    (:seller_id, :platform, :external_order_id, :external_order_item_id,
     :order_datetime, :pay_datetime, :status_raw, :status_normalized,
     :product_amount, :shipping_fee, :discount_amount, :total_payment_amount,
     :pay_method, :currency, :shop_id, :shop_name,
     :buyer_id, :buyer_name, :buyer_tel, :buyer_email,
     :receiver_name, :receiver_tel, :receiver_zipcode, :receiver_address1, :receiver_address2,
     :delivery_company, :delivery_company_code, :tracking_number,
     :quantity, :country, :memo, :raw_payload)
`
	_, err := r.db.NamedExecContext(ctx, q, orders)
	return err
}

// ListProgressable returns the oldest orders that can still move forward in
// the fulfillment flow (everything except DELIVERED / CANCELLED).
func (r *OrdersRepositoryImpl) ListProgressable(ctx context.Context, limit int) ([]model.MarketOrder, error) {
	if limit <= 0 {
		limit = 200
	}
	rows := []model.MarketOrder{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT `+orderColumns+`
		FROM mock_market_orders
		WHERE status_normalized IN (?, ?, ?)
		ORDER BY order_datetime ASC
		LIMIT ?
	`, model.StatusPaid.String(), model.StatusPreparingShipment.String(), model.StatusShipped.String(), limit)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateProgress persists the status fields touched by the progression batch.
func (r *OrdersRepositoryImpl) UpdateProgress(ctx context.Context, o *model.MarketOrder) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE mock_market_orders
		   SET status_raw = ?, status_normalized = ?, pay_datetime = ?,
		       delivery_company = ?, delivery_company_code = ?, tracking_number = ?
		 WHERE mock_order_item_id = ?
	`, o.StatusRaw, o.StatusNormalized, o.PayDatetime,
		o.DeliveryCompany, o.DeliveryCompanyCode, o.TrackingNumber,
		o.MockOrderItemID)
	return err
}
