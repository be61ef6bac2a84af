package market

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellerhub/market-mock-api/internal/model"
)

func ptr[T any](v T) *T { return &v }

func sampleOrder(platform model.Platform) model.MarketOrder {
	pay := time.Date(2025, 11, 18, 23, 34, 0, 0, time.UTC)
	return model.MarketOrder{
		MockOrderItemID:     9339,
		SellerID:            5,
		Platform:            platform,
		ExternalOrderID:     "2025111823-470081",
		ExternalOrderItemID: "2025111823-470081-P01",
		OrderDatetime:       time.Date(2025, 11, 18, 23, 11, 0, 0, time.UTC),
		PayDatetime:         &pay,
		StatusRaw:           "배송중",
		StatusNormalized:    ptr("SHIPPED"),
		ProductAmount:       ptr[int64](30000),
		ShippingFee:         ptr[int64](3000),
		DiscountAmount:      ptr[int64](0),
		TotalPaymentAmount:  ptr[int64](61400),
		PayMethod:           ptr("KAKAO_PAY"),
		Currency:            ptr("KRW"),
		ShopID:              ptr("SHOP-SM-023"),
		ShopName:            ptr("팔랑샵"),
		BuyerID:             ptr("user_5296"),
		BuyerName:           ptr("정유진"),
		BuyerTel:            ptr("010-8081-1279"),
		BuyerEmail:          ptr("mock6008@example.com"),
		ReceiverName:        ptr("배송수령인"),
		ReceiverTel:         ptr("010-4702-3473"),
		ReceiverZipcode:     ptr("87455"),
		ReceiverAddress1:    ptr("서울특별시 테스트구 테스트로 123"),
		ReceiverAddress2:    ptr("테스트아파트 101동 1001호"),
		DeliveryCompany:     ptr("CJ대한통운"),
		DeliveryCompanyCode: ptr("CJGLS"),
		TrackingNumber:      ptr("CJ11188190076"),
		Quantity:            2,
		Country:             ptr("KR"),
		Memo:                ptr("빠른 배송 부탁드려요."),
	}
}

func TestToSmartstoreResponse(t *testing.T) {
	resp := ToSmartstoreResponse([]model.MarketOrder{sampleOrder(model.PlatformSmartstore)})

	assert.Equal(t, 200, resp.Code)
	assert.Equal(t, "success", resp.Message)
	require.Len(t, resp.Data, 1)

	block := resp.Data[0]
	assert.Equal(t, "2025111823-470081", block.Order.OrderID)
	assert.Equal(t, "2025-11-18T23:11:00", block.Order.OrderDate)
	assert.Equal(t, "정유진", block.Order.OrdererName)
	assert.Equal(t, int64(61400), block.Order.GeneralPaymentAmount)
	assert.Equal(t, "2025111823-470081-P01", block.ProductOrder.ProductOrderID)
	assert.Equal(t, 2, block.ProductOrder.Quantity)
	assert.Equal(t, "배송중", block.ProductOrder.ProductOrderStatus)
	// delivered date falls back to pay_datetime
	assert.Equal(t, "2025-11-18T23:34:00", block.Delivery.DeliveredDate)
	assert.Equal(t, "CJ11188190076", block.Delivery.TrackingNumber)
}

func TestToCoupangResponse(t *testing.T) {
	o := sampleOrder(model.PlatformCoupang)
	o.ExternalOrderID = "2202510010001"
	resp := ToCoupangResponse([]model.MarketOrder{o})

	assert.Equal(t, "OK", resp.Message)
	assert.Equal(t, "", resp.NextToken)
	require.Len(t, resp.Data, 1)

	sh := resp.Data[0]
	// numeric external id becomes both shipmentBoxId and orderId
	assert.Equal(t, int64(2202510010001), sh.ShipmentBoxID)
	require.NotNil(t, sh.OrderID)
	assert.Equal(t, int64(2202510010001), *sh.OrderID)
	assert.Equal(t, "SHIPPED", sh.Status, "coupang reports the normalized status")
	assert.Equal(t, CoupangMoney{CurrencyCode: "KRW", Units: 3000, Nanos: 0}, sh.ShippingPrice)
	require.Len(t, sh.OrderItems, 1)
	assert.Equal(t, CoupangMoney{CurrencyCode: "KRW", Units: 30000, Nanos: 0}, sh.OrderItems[0].SalesPrice)
	assert.Equal(t, "유료", sh.OrderItems[0].DeliveryChargeTypeName)
	assert.Equal(t, "87455", sh.Receiver.PostCode)
}

func TestToCoupangResponse_NonNumericOrderID(t *testing.T) {
	for _, id := range []string{"2025111823-470081", "+2202510010001", "-2202510010001"} {
		o := sampleOrder(model.PlatformCoupang)
		o.ExternalOrderID = id
		resp := ToCoupangResponse([]model.MarketOrder{o})

		require.Len(t, resp.Data, 1)
		assert.Equal(t, int64(9339), resp.Data[0].ShipmentBoxID, "%q falls back to the row id", id)
		assert.Nil(t, resp.Data[0].OrderID, "%q is not a digits-only id", id)
	}
}

func TestToZigzagResponse(t *testing.T) {
	resp := ToZigzagResponse([]model.MarketOrder{sampleOrder(model.PlatformZigzag)})

	require.Len(t, resp.Results, 1)
	item := resp.Results[0]
	assert.Equal(t, "2025111823-470081-P01", item.OrderItemNumber)
	assert.Equal(t, "2025111823-470081", item.Order.OrderNumber)
	assert.Equal(t, "정유진", item.Order.Orderer.Name)
	// epoch millis of order_datetime
	assert.Equal(t, time.Date(2025, 11, 18, 23, 11, 0, 0, time.UTC).UnixMilli(), item.DateCreated)
	assert.Equal(t, "배송중", item.Status, "zigzag reports the raw status")
	assert.Equal(t, int64(30000), item.ProductInfo.Price)
	assert.Equal(t, "배송수령인", item.Receiver.Name)
}

func TestToAblyResponse(t *testing.T) {
	resp := ToAblyResponse([]model.MarketOrder{sampleOrder(model.PlatformAbly)})

	require.Len(t, resp.Result, 1)
	item := resp.Result[0]
	assert.Equal(t, "2025111823-470081-P01", item.Sno)
	assert.Equal(t, "2025111823-470081", item.OrderSno)
	assert.Equal(t, 2, item.Ea)
	// minute resolution, space separated
	assert.Equal(t, "2025-11-18 23:11", item.OrderedAt)
	assert.Equal(t, "KAKAO_PAY", item.PayMethodName)
	assert.Equal(t, "서울특별시 테스트구 테스트로 123 테스트아파트 101동 1001호", item.ReceiverAddr)
	assert.Equal(t, int64(3000), item.DeliveryAmount)
}

func TestRender_EmptyListsMarshalToEmptyArrays(t *testing.T) {
	for _, platform := range model.Platforms() {
		b, err := json.Marshal(Render(platform, nil))
		require.NoError(t, err)
		s := string(b)
		assert.NotContains(t, s, "null", "platform %s must render an empty array", platform)
		assert.Contains(t, s, `"code":200`)
	}
}

func TestRender_DispatchesPerPlatform(t *testing.T) {
	assert.IsType(t, SmartstoreOrdersResponse{}, Render(model.PlatformSmartstore, nil))
	assert.IsType(t, CoupangOrdersResponse{}, Render(model.PlatformCoupang, nil))
	assert.IsType(t, ZigzagOrdersResponse{}, Render(model.PlatformZigzag, nil))
	assert.IsType(t, AblyOrdersResponse{}, Render(model.PlatformAbly, nil))
}
