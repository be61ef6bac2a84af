// Package mockgen produces realistic mock order rows for the four
// simulated marketplaces: an initial backfill over a date range, hourly
// insert batches, and a status-progression batch that walks non-terminal
// orders through the fulfillment flow.
package mockgen

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/sellerhub/market-mock-api/internal/metrics"
	"github.com/sellerhub/market-mock-api/internal/model"
	"github.com/sellerhub/market-mock-api/internal/repository"
	"github.com/sellerhub/market-mock-api/internal/util"
	"go.uber.org/zap"
)

// seller_id range matches the seeded mock_api_clients rows.
const (
	minSellerID = 1
	maxSellerID = 100
)

const insertChunkSize = 500

// rawStatuses maps each normalized state to the platform's own vocabulary.
var rawStatuses = map[model.Platform]map[model.OrderStatus][]string{
	model.PlatformSmartstore: {
		model.StatusPaid:              {"결제완료"},
		model.StatusPreparingShipment: {"상품준비중"},
		model.StatusShipped:           {"배송중"},
		model.StatusDelivered:         {"배송완료", "구매확정"},
		model.StatusCancelled:         {"주문취소", "결제취소"},
	},
	model.PlatformCoupang: {
		model.StatusPaid:              {"ACCEPT"},
		model.StatusPreparingShipment: {"INSTRUCT"},
		model.StatusShipped:           {"IN_DELIVERY"},
		model.StatusDelivered:         {"FINAL_DELIVERY"},
		model.StatusCancelled:         {"CANCELED"},
	},
	model.PlatformZigzag: {
		model.StatusPaid:              {"PAY_COMPLETE"},
		model.StatusPreparingShipment: {"DELIVERY_READY"},
		model.StatusShipped:           {"DELIVERY_IN_PROGRESS"},
		model.StatusDelivered:         {"DELIVERY_COMPLETED"},
		model.StatusCancelled:         {"ORDER_CANCEL"},
	},
	model.PlatformAbly: {
		model.StatusPaid:              {"결제완료"},
		model.StatusPreparingShipment: {"배송준비중"},
		model.StatusShipped:           {"배송중"},
		model.StatusDelivered:         {"배송완료"},
		model.StatusCancelled:         {"취소완료"},
	},
}

type deliveryCompany struct {
	name string
	code string
}

// per-platform carriers, intentionally inconsistent like the real APIs
var deliveryCompanies = map[model.Platform][]deliveryCompany{
	model.PlatformSmartstore: {
		{"CJ대한통운", "CJGLS"},
		{"롯데택배", "LOTTES"},
		{"한진택배", "HANJIN"},
	},
	model.PlatformCoupang: {
		{"쿠팡로지스틱스", "CPLG"},
		{"CJ대한통운", "CJP"},
	},
	model.PlatformZigzag: {
		{"로젠택배", "LOGEN_ZZ"},
		{"CJ대한통운", "CJ_ZZ"},
	},
	model.PlatformAbly: {
		{"우체국택배", "KOREAPOST_AB"},
		{"CJ대한통운", "CJ_AB"},
	},
}

var (
	buyerNames = []string{"김철수", "이영희", "박민수", "정유진", "홍길동"}
	shopNames  = []string{"위시어스", "팔랑샵", "데일리룩", "커피굿즈샵"}
	payMethods = []string{"CARD", "KAKAO_PAY", "NAVER_PAY", "TOSS_PAY", "무통장입금"}
	memos      = []string{
		"문 앞에 두고 가주세요.",
		"경비실에 맡겨주세요.",
		"부재 시 연락 부탁드립니다.",
		"빠른 배송 부탁드려요.",
	}
)

var trackingPrefixes = map[model.Platform]string{
	model.PlatformSmartstore: "CJ",
	model.PlatformCoupang:    "CP",
	model.PlatformZigzag:     "ZZ",
	model.PlatformAbly:       "AB",
}

// EventPublisher receives generated orders, typically a Kafka producer.
type EventPublisher interface {
	PublishOrderEvents(ctx context.Context, events []model.OrderEvent) error
}

type Generator struct {
	orders repository.OrdersRepository
	pub    EventPublisher // nil = publishing disabled

	mu  sync.Mutex // guards rng; rand.Rand is not safe for concurrent use
	rng *rand.Rand

	log *zap.Logger
}

// New builds a Generator. seed != 0 makes the output deterministic.
func New(orders repository.OrdersRepository, pub EventPublisher, seed int64, log *zap.Logger) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		orders: orders,
		pub:    pub,
		rng:    rand.New(rand.NewSource(seed)),
		log:    log,
	}
}

// intn serializes rng access; the admin handlers share one Generator and
// echo runs them on separate goroutines.
func (g *Generator) intn(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Intn(n)
}

func (g *Generator) pick(ss []string) string {
	return ss[g.intn(len(ss))]
}

func (g *Generator) chooseStatus(platform model.Platform) (raw string, normalized model.OrderStatus) {
	states := []model.OrderStatus{
		model.StatusPaid, model.StatusPreparingShipment, model.StatusShipped,
		model.StatusDelivered, model.StatusCancelled,
	}
	normalized = states[g.intn(len(states))]
	raw = g.pick(rawStatuses[platform][normalized])
	return raw, normalized
}

// nextStatus returns the raw/normalized pair one step further in the flow,
// or ok=false when the order cannot progress.
func (g *Generator) nextStatus(platform model.Platform, current model.OrderStatus) (string, model.OrderStatus, bool) {
	next, ok := current.Next()
	if !ok {
		return "", "", false
	}
	candidates := rawStatuses[platform][next]
	if len(candidates) == 0 {
		return "", "", false
	}
	return candidates[g.intn(len(candidates))], next, true
}

func (g *Generator) chooseDeliveryCompany(platform model.Platform) deliveryCompany {
	candidates := deliveryCompanies[platform]
	return candidates[g.intn(len(candidates))]
}

// externalIDs builds platform-specific order/item id formats.
func externalIDs(platform model.Platform, baseDT time.Time, seq int64) (orderID, itemID string) {
	ymdh := baseDT.Format("2006010215")

	switch platform {
	case model.PlatformCoupang:
		orderID = fmt.Sprintf("2%s%04d", ymdh, seq)
		itemID = fmt.Sprintf("%s%02d", orderID, seq%100)
	case model.PlatformSmartstore:
		orderID = fmt.Sprintf("%s-%04d", ymdh, seq)
		itemID = fmt.Sprintf("%s-P%02d", orderID, seq%100)
	case model.PlatformZigzag:
		orderID = fmt.Sprintf("ZZ%s%04d", ymdh, seq)
		itemID = fmt.Sprintf("ZZIT%s%06d", ymdh, seq)
	case model.PlatformAbly:
		orderID = fmt.Sprintf("AB%s%04d", ymdh, seq)
		itemID = fmt.Sprintf("%d", seq)
	default:
		orderID = fmt.Sprintf("%s%04d", ymdh, seq)
		itemID = fmt.Sprintf("%s%06d", ymdh, seq)
	}

	return orderID, itemID
}

func (g *Generator) trackingNumber(platform model.Platform, baseDT time.Time) string {
	return fmt.Sprintf("%s%s%07d", trackingPrefixes[platform], baseDT.Format("0102"), 1000000+g.intn(9000000))
}

func (g *Generator) randomPhone() string {
	return fmt.Sprintf("010-%04d-%04d", 1000+g.intn(9000), 1000+g.intn(9000))
}

func ptr[T any](v T) *T { return &v }

// rawPayload is the simplified "raw" JSON snapshot kept per order for ETL
// practice, not a 1:1 copy of any platform payload.
func rawPayload(batchID string, o *model.MarketOrder) (string, error) {
	payload := map[string]any{
		"batch_id":               batchID,
		"platform":               o.Platform,
		"external_order_id":      o.ExternalOrderID,
		"external_order_item_id": o.ExternalOrderItemID,
		"status": map[string]any{
			"raw":        o.StatusRaw,
			"normalized": o.StatusNormalized,
		},
		"amount": map[string]any{
			"product_amount":       o.ProductAmount,
			"shipping_fee":         o.ShippingFee,
			"discount_amount":      o.DiscountAmount,
			"total_payment_amount": o.TotalPaymentAmount,
			"currency":             o.Currency,
		},
		"buyer": map[string]any{
			"buyer_id":    o.BuyerID,
			"buyer_name":  o.BuyerName,
			"buyer_tel":   o.BuyerTel,
			"buyer_email": o.BuyerEmail,
		},
		"receiver": map[string]any{
			"receiver_name":     o.ReceiverName,
			"receiver_tel":      o.ReceiverTel,
			"receiver_zipcode":  o.ReceiverZipcode,
			"receiver_address1": o.ReceiverAddress1,
			"receiver_address2": o.ReceiverAddress2,
		},
		"shipping": map[string]any{
			"delivery_company":      o.DeliveryCompany,
			"delivery_company_code": o.DeliveryCompanyCode,
			"tracking_number":       o.TrackingNumber,
		},
		"meta": map[string]any{
			"order_datetime": o.OrderDatetime,
			"pay_datetime":   o.PayDatetime,
			"country":        o.Country,
			"memo":           o.Memo,
		},
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// newOrder assembles one mock order row.
func (g *Generator) newOrder(batchID string, platform model.Platform, orderDT time.Time, seq int64, sellerID int64) (model.MarketOrder, error) {
	statusRaw, statusNorm := g.chooseStatus(platform)

	quantity := 1 + g.intn(3)
	productAmount := int64(5000 + g.intn(45001))
	shippingFee := []int64{0, 0, 3000}[g.intn(3)] // free slightly more often
	discountAmount := []int64{0, 0, 0, productAmount / 10}[g.intn(4)]
	totalPayment := productAmount*int64(quantity) + shippingFee - discountAmount

	var payDT *time.Time
	if statusNorm != model.StatusCancelled {
		payDT = ptr(orderDT.Add(time.Duration(g.intn(121)) * time.Minute))
	}

	var company, code, tracking *string
	if statusNorm == model.StatusShipped || statusNorm == model.StatusDelivered {
		dc := g.chooseDeliveryCompany(platform)
		company, code = ptr(dc.name), ptr(dc.code)
		tracking = ptr(g.trackingNumber(platform, orderDT))
	}

	orderID, itemID := externalIDs(platform, orderDT, seq)
	buyerName := g.pick(buyerNames)

	o := model.MarketOrder{
		SellerID:            sellerID,
		Platform:            platform,
		ExternalOrderID:     orderID,
		ExternalOrderItemID: itemID,
		OrderDatetime:       orderDT,
		PayDatetime:         payDT,
		StatusRaw:           statusRaw,
		StatusNormalized:    ptr(statusNorm.String()),
		ProductAmount:       &productAmount,
		ShippingFee:         &shippingFee,
		DiscountAmount:      &discountAmount,
		TotalPaymentAmount:  &totalPayment,
		PayMethod:           ptr(g.pick(payMethods)),
		Currency:            ptr("KRW"),
		ShopID:              ptr(fmt.Sprintf("SHOP-%s-%03d", platform.String()[:2], 1+g.intn(50))),
		ShopName:            ptr(g.pick(shopNames)),
		BuyerID:             ptr(fmt.Sprintf("user_%04d", 1000+g.intn(9000))),
		BuyerName:           &buyerName,
		BuyerTel:            ptr(g.randomPhone()),
		BuyerEmail:          ptr(fmt.Sprintf("mock%d@example.com", 1+g.intn(9999))),
		ReceiverName:        ptr([]string{buyerName, "배송수령인"}[g.intn(2)]),
		ReceiverTel:         ptr(g.randomPhone()),
		ReceiverZipcode:     ptr(fmt.Sprintf("%05d", 10000+g.intn(90000))),
		ReceiverAddress1:    ptr("서울특별시 테스트구 테스트로 123"),
		ReceiverAddress2:    ptr("테스트아파트 101동 1001호"),
		DeliveryCompany:     company,
		DeliveryCompanyCode: code,
		TrackingNumber:      tracking,
		Quantity:            quantity,
		Country:             ptr("KR"),
		Memo:                ptr(g.pick(memos)),
	}

	raw, err := rawPayload(batchID, &o)
	if err != nil {
		return model.MarketOrder{}, err
	}
	o.RawPayload = &raw

	return o, nil
}

func (g *Generator) flush(ctx context.Context, batch []model.MarketOrder) error {
	if err := g.orders.InsertBatch(ctx, batch); err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}
	for i := range batch {
		metrics.OrdersGeneratedTotal.WithLabelValues(batch[i].Platform.String()).Inc()
	}
	if g.pub == nil {
		return nil
	}

	events := make([]model.OrderEvent, 0, len(batch))
	for i := range batch {
		o := &batch[i]
		var norm string
		if o.StatusNormalized != nil {
			norm = *o.StatusNormalized
		}
		var total int64
		if o.TotalPaymentAmount != nil {
			total = *o.TotalPaymentAmount
		}
		var batchID string
		if o.RawPayload != nil {
			// batch id also lives in the payload; event carries it explicitly
			var p struct {
				BatchID string `json:"batch_id"`
			}
			_ = json.Unmarshal([]byte(*o.RawPayload), &p)
			batchID = p.BatchID
		}
		events = append(events, model.OrderEvent{
			BatchID:             batchID,
			Platform:            o.Platform,
			SellerID:            o.SellerID,
			ExternalOrderID:     o.ExternalOrderID,
			ExternalOrderItemID: o.ExternalOrderItemID,
			OrderDatetime:       o.OrderDatetime,
			StatusNormalized:    norm,
			TotalPaymentAmount:  total,
		})
	}

	if err := g.pub.PublishOrderEvents(ctx, events); err != nil {
		// mock data is already persisted; losing events is tolerable
		g.log.Warn("publish order events failed", zap.Error(err))
	}
	return nil
}

// GenerateInitial backfills every platform with perHour orders for each
// hour in [startDate, endDate] (inclusive day bounds). Returns rows inserted.
func (g *Generator) GenerateInitial(ctx context.Context, startDate, endDate time.Time, perHour int) (int, error) {
	if perHour <= 0 {
		perHour = 3
	}

	batchID := util.NewULID()
	start := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, startDate.Location())
	end := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 23, 0, 0, 0, endDate.Location())

	inserted := 0
	var seq int64 = 1
	batch := make([]model.MarketOrder, 0, insertChunkSize)

	for current := start; !current.After(end); current = current.Add(time.Hour) {
		for _, platform := range model.Platforms() {
			for i := 0; i < perHour; i++ {
				orderDT := current.Add(time.Duration(g.intn(60)) * time.Minute)
				sellerID := int64(minSellerID + g.intn(maxSellerID-minSellerID+1))

				o, err := g.newOrder(batchID, platform, orderDT, seq, sellerID)
				if err != nil {
					return inserted, err
				}
				batch = append(batch, o)
				seq++

				if len(batch) >= insertChunkSize {
					if err := g.flush(ctx, batch); err != nil {
						return inserted, err
					}
					inserted += len(batch)
					batch = batch[:0]
				}
			}
		}
	}

	if len(batch) > 0 {
		if err := g.flush(ctx, batch); err != nil {
			return inserted, err
		}
		inserted += len(batch)
	}

	g.log.Info("initial mock data generated",
		zap.String("batch_id", batchID),
		zap.Int("inserted", inserted))
	return inserted, nil
}

// GenerateHourly inserts perPlatform orders for the hour containing
// targetHour (zero value = current hour).
func (g *Generator) GenerateHourly(ctx context.Context, targetHour time.Time, perPlatform int) (int, error) {
	if perPlatform <= 0 {
		perPlatform = 3
	}
	if targetHour.IsZero() {
		targetHour = time.Now()
	}
	hourStart := targetHour.Truncate(time.Hour)

	batchID := util.NewULID()
	seq := hourStart.Unix() // roughly unique across runs
	batch := make([]model.MarketOrder, 0, perPlatform*len(model.Platforms()))

	for _, platform := range model.Platforms() {
		for i := 0; i < perPlatform; i++ {
			orderDT := hourStart.Add(time.Duration(g.intn(60)) * time.Minute)
			sellerID := int64(minSellerID + g.intn(maxSellerID-minSellerID+1))

			o, err := g.newOrder(batchID, platform, orderDT, seq, sellerID)
			if err != nil {
				return 0, err
			}
			batch = append(batch, o)
			seq++
		}
	}

	if err := g.flush(ctx, batch); err != nil {
		return 0, err
	}

	g.log.Info("hourly mock orders generated",
		zap.String("batch_id", batchID),
		zap.Int("inserted", len(batch)))
	return len(batch), nil
}

// ProgressStatuses advances up to maxRows non-terminal orders one step in
// the fulfillment flow, filling in pay/shipping fields as states require.
func (g *Generator) ProgressStatuses(ctx context.Context, maxRows int) (int, error) {
	candidates, err := g.orders.ListProgressable(ctx, maxRows)
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range candidates {
		o := &candidates[i]
		if !o.Platform.Valid() || o.StatusNormalized == nil {
			continue
		}

		raw, next, ok := g.nextStatus(o.Platform, model.OrderStatus(*o.StatusNormalized))
		if !ok {
			continue
		}

		o.StatusRaw = raw
		o.StatusNormalized = ptr(next.String())

		if o.PayDatetime == nil {
			o.PayDatetime = ptr(o.OrderDatetime.Add(time.Duration(g.intn(121)) * time.Minute))
		}

		if next == model.StatusShipped || next == model.StatusDelivered {
			if o.DeliveryCompany == nil || o.DeliveryCompanyCode == nil {
				dc := g.chooseDeliveryCompany(o.Platform)
				o.DeliveryCompany, o.DeliveryCompanyCode = ptr(dc.name), ptr(dc.code)
			}
			if o.TrackingNumber == nil {
				o.TrackingNumber = ptr(g.trackingNumber(o.Platform, o.OrderDatetime))
			}
		}

		if err := g.orders.UpdateProgress(ctx, o); err != nil {
			return updated, err
		}
		updated++
	}

	return updated, nil
}
