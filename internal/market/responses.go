// Package market renders stored orders in each marketplace's native
// seller-API response shape. Field names and formats deliberately differ
// per platform, datetime formats included.
package market

import (
	"strconv"
	"strings"

	"github.com/sellerhub/market-mock-api/internal/model"
)

// isoFormat matches the platforms' zone-less ISO8601 timestamps.
const isoFormat = "2006-01-02T15:04:05"

// ablyFormat is ABLY's minute-resolution order time.
const ablyFormat = "2006-01-02 15:04"

func strOr(p *string, def string) string {
	if p != nil {
		return *p
	}
	return def
}

func amtOr0(p *int64) int64 {
	if p != nil {
		return *p
	}
	return 0
}

// Render returns the platform-native envelope for a page of orders.
func Render(platform model.Platform, orders []model.MarketOrder) any {
	switch platform {
	case model.PlatformSmartstore:
		return ToSmartstoreResponse(orders)
	case model.PlatformCoupang:
		return ToCoupangResponse(orders)
	case model.PlatformZigzag:
		return ToZigzagResponse(orders)
	case model.PlatformAbly:
		return ToAblyResponse(orders)
	}
	return map[string]any{"code": 400, "message": "unsupported platform", "data": []any{}}
}

// ========== SMARTSTORE ==========

type SmartstoreOrder struct {
	OrderID              string `json:"orderId"`
	OrderDate            string `json:"orderDate"`
	OrdererID            string `json:"ordererId"`
	OrdererName          string `json:"ordererName"`
	OrdererTel           string `json:"ordererTel"`
	OrderDiscountAmount  int64  `json:"orderDiscountAmount"`
	GeneralPaymentAmount int64  `json:"generalPaymentAmount"`
}

type SmartstoreProductOrder struct {
	ProductOrderID     string `json:"productOrderId"`
	ProductName        string `json:"productName"`
	Quantity           int    `json:"quantity"`
	TotalPaymentAmount int64  `json:"totalPaymentAmount"`
	DeliveryFeeAmount  int64  `json:"deliveryFeeAmount"`
	ProductOrderStatus string `json:"productOrderStatus"`
}

type SmartstoreDelivery struct {
	DeliveredDate   string `json:"deliveredDate"`
	DeliveryCompany string `json:"deliveryCompany"`
	TrackingNumber  string `json:"trackingNumber"`
}

type SmartstoreOrderBlock struct {
	Order        SmartstoreOrder        `json:"order"`
	ProductOrder SmartstoreProductOrder `json:"productOrder"`
	Delivery     SmartstoreDelivery     `json:"delivery"`
}

type SmartstoreOrdersResponse struct {
	Code    int                    `json:"code"`
	Message string                 `json:"message"`
	Data    []SmartstoreOrderBlock `json:"data"`
}

func ToSmartstoreResponse(orders []model.MarketOrder) SmartstoreOrdersResponse {
	data := make([]SmartstoreOrderBlock, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		data = append(data, SmartstoreOrderBlock{
			Order: SmartstoreOrder{
				OrderID:              o.ExternalOrderID,
				OrderDate:            o.OrderDatetime.Format(isoFormat),
				OrdererID:            strOr(o.BuyerID, ""),
				OrdererName:          strOr(o.BuyerName, ""),
				OrdererTel:           strOr(o.BuyerTel, ""),
				OrderDiscountAmount:  amtOr0(o.DiscountAmount),
				GeneralPaymentAmount: amtOr0(o.TotalPaymentAmount),
			},
			ProductOrder: SmartstoreProductOrder{
				ProductOrderID:     o.ExternalOrderItemID,
				ProductName:        strOr(o.ShopName, ""),
				Quantity:           o.Quantity,
				TotalPaymentAmount: amtOr0(o.TotalPaymentAmount),
				DeliveryFeeAmount:  amtOr0(o.ShippingFee),
				ProductOrderStatus: o.StatusRaw,
			},
			Delivery: SmartstoreDelivery{
				DeliveredDate:   o.PaidOrOrdered().Format(isoFormat),
				DeliveryCompany: strOr(o.DeliveryCompany, ""),
				TrackingNumber:  strOr(o.TrackingNumber, ""),
			},
		})
	}
	return SmartstoreOrdersResponse{Code: 200, Message: "success", Data: data}
}

// ========== COUPANG ==========

// CoupangMoney mirrors Coupang's money wrapper; currency is always KRW.
type CoupangMoney struct {
	CurrencyCode string `json:"currencyCode"`
	Units        int64  `json:"units"`
	Nanos        int    `json:"nanos"`
}

func krw(amount int64) CoupangMoney {
	return CoupangMoney{CurrencyCode: "KRW", Units: amount, Nanos: 0}
}

type CoupangOrderer struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	SafeNumber    string `json:"safeNumber"`
	OrdererNumber string `json:"ordererNumber"`
}

type CoupangReceiver struct {
	Name           string `json:"name"`
	SafeNumber     string `json:"safeNumber"`
	ReceiverNumber string `json:"receiverNumber"`
	Addr1          string `json:"addr1"`
	Addr2          string `json:"addr2"`
	PostCode       string `json:"postCode"`
}

type CoupangOrderItem struct {
	VendorItemPackageID        int64             `json:"vendorItemPackageId"`
	VendorItemPackageName      string            `json:"vendorItemPackageName"`
	ProductID                  int64             `json:"productId"`
	VendorItemID               int64             `json:"vendorItemId"`
	VendorItemName             string            `json:"vendorItemName"`
	ShippingCount              int               `json:"shippingCount"`
	SalesPrice                 CoupangMoney      `json:"salesPrice"`
	OrderPrice                 CoupangMoney      `json:"orderPrice"`
	DiscountPrice              CoupangMoney      `json:"discountPrice"`
	InstantCouponDiscount      CoupangMoney      `json:"instantCouponDiscount"`
	DownloadableCouponDiscount CoupangMoney      `json:"downloadableCouponDiscount"`
	CoupangDiscount            CoupangMoney      `json:"coupangDiscount"`
	ExternalVendorSkuCode      string            `json:"externalVendorSkuCode"`
	EtcInfoHeader              string            `json:"etcInfoHeader"`
	EtcInfoValue               string            `json:"etcInfoValue"`
	EtcInfoValues              []string          `json:"etcInfoValues"`
	SellerProductID            int64             `json:"sellerProductId"`
	SellerProductName          string            `json:"sellerProductName"`
	SellerProductItemName      string            `json:"sellerProductItemName"`
	FirstSellerProductItemName string            `json:"firstSellerProductItemName"`
	CancelCount                int               `json:"cancelCount"`
	HoldCountForCancel         int               `json:"holdCountForCancel"`
	EstimatedShippingDate      string            `json:"estimatedShippingDate"`
	PlannedShippingDate        string            `json:"plannedShippingDate"`
	InvoiceNumberUploadDate    string            `json:"invoiceNumberUploadDate"`
	ExtraProperties            map[string]string `json:"extraProperties"`
	PricingBadge               bool              `json:"pricingBadge"`
	UsedProduct                bool              `json:"usedProduct"`
	ConfirmDate                string            `json:"confirmDate"`
	DeliveryChargeTypeName     string            `json:"deliveryChargeTypeName"`
	Canceled                   bool              `json:"canceled"`
}

type CoupangOverseaInfo struct {
	PersonalCustomsClearanceCode string `json:"personalCustomsClearanceCode"`
	OrdererSsn                   string `json:"ordererSsn"`
	OrdererPhoneNumber           string `json:"ordererPhoneNumber"`
}

type CoupangShipment struct {
	ShipmentBoxID          int64              `json:"shipmentBoxId"`
	OrderID                *int64             `json:"orderId"`
	OrderedAt              string             `json:"orderedAt"`
	Orderer                CoupangOrderer     `json:"orderer"`
	PaidAt                 string             `json:"paidAt"`
	Status                 string             `json:"status"`
	ShippingPrice          CoupangMoney       `json:"shippingPrice"`
	RemotePrice            *CoupangMoney      `json:"remotePrice"`
	RemoteArea             bool               `json:"remoteArea"`
	ParcelPrintMessage     string             `json:"parcelPrintMessage"`
	SplitShipping          bool               `json:"splitShipping"`
	AbleSplitShipping      bool               `json:"ableSplitShipping"`
	Receiver               CoupangReceiver    `json:"receiver"`
	OrderItems             []CoupangOrderItem `json:"orderItems"`
	OverseaShippingInfoDto CoupangOverseaInfo `json:"overseaShippingInfoDto"`
	DeliveryCompanyName    string             `json:"deliveryCompanyName"`
	InvoiceNumber          string             `json:"invoiceNumber"`
	InTrasitDateTime       string             `json:"inTrasitDateTime"`
	DeliveredDate          string             `json:"deliveredDate"`
	Refer                  string             `json:"refer"`
	ShipmentType           string             `json:"shipmentType"`
}

type CoupangOrdersResponse struct {
	Code      int               `json:"code"`
	Message   string            `json:"message"`
	Data      []CoupangShipment `json:"data"`
	NextToken string            `json:"nextToken"`
}

// numericID parses external ids like "2202510180001"; Coupang ids are
// digits only, so signed forms like "+1" are not ids.
func numericID(s string) (int64, bool) {
	v := strings.TrimSpace(s)
	if v == "" {
		return 0, false
	}
	for _, r := range v {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func ToCoupangResponse(orders []model.MarketOrder) CoupangOrdersResponse {
	data := make([]CoupangShipment, 0, len(orders))
	for i := range orders {
		o := &orders[i]

		boxID := o.MockOrderItemID
		var orderID *int64
		if n, ok := numericID(o.ExternalOrderID); ok {
			boxID = n
			orderID = &n
		}

		chargeType := "무료"
		if amtOr0(o.ShippingFee) > 0 {
			chargeType = "유료"
		}

		data = append(data, CoupangShipment{
			ShipmentBoxID: boxID,
			OrderID:       orderID,
			OrderedAt:     o.OrderDatetime.Format(isoFormat),
			Orderer: CoupangOrderer{
				Name:       strOr(o.BuyerName, ""),
				Email:      strOr(o.BuyerEmail, ""),
				SafeNumber: strOr(o.BuyerTel, ""),
			},
			PaidAt:        o.PaidOrOrdered().Format(isoFormat),
			Status:        strOr(o.StatusNormalized, o.StatusRaw),
			ShippingPrice: krw(amtOr0(o.ShippingFee)),
			RemotePrice:   nil,
			Receiver: CoupangReceiver{
				Name:       strOr(o.ReceiverName, strOr(o.BuyerName, "")),
				SafeNumber: strOr(o.ReceiverTel, ""),
				Addr1:      strOr(o.ReceiverAddress1, ""),
				Addr2:      strOr(o.ReceiverAddress2, ""),
				PostCode:   strOr(o.ReceiverZipcode, ""),
			},
			ParcelPrintMessage: strOr(o.Memo, ""),
			OrderItems: []CoupangOrderItem{{
				VendorItemPackageName:      strOr(o.ShopName, ""),
				VendorItemID:               o.MockOrderItemID,
				VendorItemName:             strOr(o.ShopName, ""),
				ShippingCount:              o.Quantity,
				SalesPrice:                 krw(amtOr0(o.ProductAmount)),
				OrderPrice:                 krw(amtOr0(o.TotalPaymentAmount)),
				DiscountPrice:              krw(amtOr0(o.DiscountAmount)),
				InstantCouponDiscount:      krw(0),
				DownloadableCouponDiscount: krw(0),
				CoupangDiscount:            krw(0),
				ExternalVendorSkuCode:      strOr(o.ShopID, ""),
				EtcInfoValues:              []string{},
				SellerProductName:          strOr(o.ShopName, ""),
				SellerProductItemName:      strOr(o.ShopName, ""),
				FirstSellerProductItemName: strOr(o.ShopName, ""),
				EstimatedShippingDate:      o.OrderDatetime.Format("2006-01-02"),
				ExtraProperties:            map[string]string{},
				ConfirmDate:                o.PaidOrOrdered().Format(isoFormat),
				DeliveryChargeTypeName:     chargeType,
			}},
			OverseaShippingInfoDto: CoupangOverseaInfo{},
			DeliveryCompanyName:    strOr(o.DeliveryCompany, ""),
			InvoiceNumber:          strOr(o.TrackingNumber, ""),
			InTrasitDateTime:       o.OrderDatetime.Format(isoFormat),
			DeliveredDate:          o.PaidOrOrdered().Format(isoFormat),
			Refer:                  "안드로이드앱",
			ShipmentType:           "CGF LITE",
		})
	}
	return CoupangOrdersResponse{Code: 200, Message: "OK", Data: data, NextToken: ""}
}

// ========== ZIGZAG ==========

type ZigzagOrderer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ZigzagOrder struct {
	OrderNumber string        `json:"order_number"`
	Orderer     ZigzagOrderer `json:"orderer"`
}

type ZigzagReceiver struct {
	Name string `json:"name"`
}

type ZigzagProductInfo struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type ZigzagPaymentAmount struct {
	CouponDiscountAmount int64 `json:"coupon_discount_amount"`
}

type ZigzagResultItem struct {
	OrderItemNumber string              `json:"order_item_number"`
	Order           ZigzagOrder         `json:"order"`
	Receiver        ZigzagReceiver      `json:"receiver"`
	DateCreated     int64               `json:"date_created"` // epoch millis
	Status          string              `json:"status"`
	ProductInfo     ZigzagProductInfo   `json:"product_info"`
	Quantity        int                 `json:"quantity"`
	TotalAmount     int64               `json:"total_amount"`
	ShopName        string              `json:"shop_name"`
	PaymentAmount   ZigzagPaymentAmount `json:"payment_amount"`
}

type ZigzagOrdersResponse struct {
	Code    int                `json:"code"`
	Message string             `json:"message"`
	Results []ZigzagResultItem `json:"results"`
}

func ToZigzagResponse(orders []model.MarketOrder) ZigzagOrdersResponse {
	results := make([]ZigzagResultItem, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		results = append(results, ZigzagResultItem{
			OrderItemNumber: o.ExternalOrderItemID,
			Order: ZigzagOrder{
				OrderNumber: o.ExternalOrderID,
				Orderer: ZigzagOrderer{
					Name:  strOr(o.BuyerName, ""),
					Email: strOr(o.BuyerEmail, ""),
				},
			},
			Receiver:    ZigzagReceiver{Name: strOr(o.ReceiverName, strOr(o.BuyerName, ""))},
			DateCreated: o.OrderDatetime.UnixMilli(),
			Status:      o.StatusRaw,
			ProductInfo: ZigzagProductInfo{
				Name:  strOr(o.ShopName, ""),
				Price: amtOr0(o.ProductAmount),
			},
			Quantity:      o.Quantity,
			TotalAmount:   amtOr0(o.TotalPaymentAmount),
			ShopName:      strOr(o.ShopName, ""),
			PaymentAmount: ZigzagPaymentAmount{CouponDiscountAmount: amtOr0(o.DiscountAmount)},
		})
	}
	return ZigzagOrdersResponse{Code: 200, Message: "success", Results: results}
}

// ========== ABLY ==========

type AblyOrderItem struct {
	Sno              string `json:"sno"`
	OrderSno         string `json:"order_sno"`
	Ea               int    `json:"ea"`
	Status           string `json:"status"`
	OrderedAt        string `json:"ordered_at"`
	BuyerName        string `json:"buyer_name"`
	BuyerTel         string `json:"buyer_tel"`
	BuyerEmail       string `json:"buyer_email"`
	GoodsName        string `json:"goods_name"`
	PayMethodName    string `json:"pay_method_name"`
	ReceiverName     string `json:"receiver_name"`
	ReceiverTel      string `json:"receiver_tel"`
	ReceiverAddr     string `json:"receiver_addr"`
	ReceiverPostcode string `json:"receiver_postcode"`
	Price            int64  `json:"price"`
	DeliveryAmount   int64  `json:"delivery_amount"`
	Amount           int64  `json:"amount"`
}

type AblyOrdersResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Result  []AblyOrderItem `json:"result"`
}

func ToAblyResponse(orders []model.MarketOrder) AblyOrdersResponse {
	result := make([]AblyOrderItem, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		addr := strings.TrimSpace(strOr(o.ReceiverAddress1, "") + " " + strOr(o.ReceiverAddress2, ""))
		result = append(result, AblyOrderItem{
			Sno:              o.ExternalOrderItemID,
			OrderSno:         o.ExternalOrderID,
			Ea:               o.Quantity,
			Status:           o.StatusRaw,
			OrderedAt:        o.OrderDatetime.Format(ablyFormat),
			BuyerName:        strOr(o.BuyerName, ""),
			BuyerTel:         strOr(o.BuyerTel, ""),
			BuyerEmail:       strOr(o.BuyerEmail, ""),
			GoodsName:        strOr(o.ShopName, ""),
			PayMethodName:    strOr(o.PayMethod, ""),
			ReceiverName:     strOr(o.ReceiverName, ""),
			ReceiverTel:      strOr(o.ReceiverTel, ""),
			ReceiverAddr:     addr,
			ReceiverPostcode: strOr(o.ReceiverZipcode, ""),
			Price:            amtOr0(o.ProductAmount),
			DeliveryAmount:   amtOr0(o.ShippingFee),
			Amount:           amtOr0(o.TotalPaymentAmount),
		})
	}
	return AblyOrdersResponse{Code: 200, Message: "success", Result: result}
}
