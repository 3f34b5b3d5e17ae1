package response

import (
	"time"

	"gocart/internal/pkg/errs"
	"gocart/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type OrderItemResponse struct {
	ProductID   uuid.UUID `json:"productId"`
	ProductName string    `json:"productName"`
	Quantity    int32     `json:"quantity"`
	UnitPrice   string    `json:"unitPrice"`
}

type OrderCouponResponse struct {
	Code            string `json:"code"`
	DiscountPercent string `json:"discountPercent"`
	Description     string `json:"description"`
}

type OrderResponse struct {
	ID            uuid.UUID            `json:"id"`
	StoreID       uuid.UUID            `json:"storeId"`
	AddressID     uuid.UUID            `json:"addressId"`
	PaymentMethod string               `json:"paymentMethod"`
	Status        string               `json:"status"`
	Subtotal      string               `json:"subtotal"`
	ShippingFee   string               `json:"shippingFee"`
	Total         string               `json:"total"`
	Coupon        *OrderCouponResponse `json:"coupon,omitempty"`
	Items         []OrderItemResponse  `json:"items"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// amounts are rendered with two decimals
var viewCopyOption = copier.Option{
	DeepCopy: true,
	Converters: []copier.TypeConverter{
		{
			SrcType: decimal.Decimal{},
			DstType: "",
			Fn: func(src any) (any, error) {
				d, ok := src.(decimal.Decimal)
				if !ok {
					return nil, errs.Newf("unexpected %T", src)
				}
				return d.StringFixed(2), nil
			},
		},
	},
}

func FromOrderViews(views []*queries.OrderView) ([]*OrderResponse, error) {
	res := make([]*OrderResponse, len(views))
	for i, v := range views {
		r := &OrderResponse{}
		if err := copier.CopyWithOption(r, v, viewCopyOption); err != nil {
			return nil, errs.Wrap(err, "map order view")
		}
		if r.Items == nil {
			r.Items = []OrderItemResponse{}
		}
		res[i] = r
	}
	return res, nil
}
