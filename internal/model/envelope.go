package model

import "time"

// OrderEvent is the payload published to Kafka when the mock generator
// inserts a new order. Downstream ETL consumers key on platform.
type OrderEvent struct {
	BatchID             string    `json:"batch_id"` // generation run ULID
	Platform            Platform  `json:"platform"`
	SellerID            int64     `json:"seller_id"`
	ExternalOrderID     string    `json:"external_order_id"`
	ExternalOrderItemID string    `json:"external_order_item_id"`
	OrderDatetime       time.Time `json:"order_datetime"`
	StatusNormalized    string    `json:"status_normalized"`
	TotalPaymentAmount  int64     `json:"total_payment_amount"`
}
