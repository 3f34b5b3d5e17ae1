package response

import "gocart/internal/usecase/queries"

type CouponResponse struct {
	Code            string `json:"code"`
	DiscountPercent string `json:"discountPercent"`
	Description     string `json:"description"`
}

func FromCouponPreview(p *queries.CouponPreview) *CouponResponse {
	return &CouponResponse{
		Code:            p.Code,
		DiscountPercent: p.DiscountPercent.StringFixed(2),
		Description:     p.Description,
	}
}
