package model

import "time"

// OrderStatus is the platform-independent normalized order state.
type OrderStatus string

const (
	StatusPaid              OrderStatus = "PAID"
	StatusPreparingShipment OrderStatus = "PREPARING_SHIPMENT"
	StatusShipped           OrderStatus = "SHIPPED"
	StatusDelivered         OrderStatus = "DELIVERED"
	StatusCancelled         OrderStatus = "CANCELLED"
)

func (s OrderStatus) String() string {
	return string(s)
}

// Terminal reports whether an order in this state can still progress.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Next returns the next state in the normal fulfillment flow.
// ok is false for terminal or unknown states.
func (s OrderStatus) Next() (OrderStatus, bool) {
	switch s {
	case StatusPaid:
		return StatusPreparingShipment, true
	case StatusPreparingShipment:
		return StatusShipped, true
	case StatusShipped:
		return StatusDelivered, true
	}
	return "", false
}

// MarketOrder is the DB entity for the mock_market_orders table. One row per
// order item; status_raw carries the platform's own status vocabulary while
// status_normalized carries the common flow above.
type MarketOrder struct {
	MockOrderItemID     int64      `db:"mock_order_item_id"`
	SellerID            int64      `db:"seller_id"`
	Platform            Platform   `db:"platform"`
	ExternalOrderID     string     `db:"external_order_id"`
	ExternalOrderItemID string     `db:"external_order_item_id"`
	OrderDatetime       time.Time  `db:"order_datetime"`
	PayDatetime         *time.Time `db:"pay_datetime"`
	StatusRaw           string     `db:"status_raw"`
	StatusNormalized    *string    `db:"status_normalized"`
	ProductAmount       *int64     `db:"product_amount"`
	ShippingFee         *int64     `db:"shipping_fee"`
	DiscountAmount      *int64     `db:"discount_amount"`
	TotalPaymentAmount  *int64     `db:"total_payment_amount"`
	PayMethod           *string    `db:"pay_method"`
	Currency            *string    `db:"currency"`
	ShopID              *string    `db:"shop_id"`
	ShopName            *string    `db:"shop_name"`
	BuyerID             *string    `db:"buyer_id"`
	BuyerName           *string    `db:"buyer_name"`
	BuyerTel            *string    `db:"buyer_tel"`
	BuyerEmail          *string    `db:"buyer_email"`
	ReceiverName        *string    `db:"receiver_name"`
	ReceiverTel         *string    `db:"receiver_tel"`
	ReceiverZipcode     *string    `db:"receiver_zipcode"`
	ReceiverAddress1    *string    `db:"receiver_address1"`
	ReceiverAddress2    *string    `db:"receiver_address2"`
	DeliveryCompany     *string    `db:"delivery_company"`
	DeliveryCompanyCode *string    `db:"delivery_company_code"`
	TrackingNumber      *string    `db:"tracking_number"`
	Quantity            int        `db:"quantity"`
	Country             *string    `db:"country"`
	Memo                *string    `db:"memo"`
	RawPayload          *string    `db:"raw_payload"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at"`
}

// PaidOrOrdered returns pay_datetime when present, else order_datetime.
// Several platform payloads fall back this way.
func (o *MarketOrder) PaidOrOrdered() time.Time {
	if o.PayDatetime != nil {
		return *o.PayDatetime
	}
	return o.OrderDatetime
}
