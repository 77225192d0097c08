package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPromotionValidate(t *testing.T) {
	valid := func() Promotion {
		return Promotion{
			Code:          "WELCOME10",
			DiscountType:  DiscountTypePercentage,
			DiscountValue: 10,
			PromotionType: PromotionTypePromoCode,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Promotion)
		wantErr bool
	}{
		{"valid promo code", func(*Promotion) {}, false},
		{"missing code", func(p *Promotion) { p.Code = "" }, true},
		{"percentage over 100", func(p *Promotion) { p.DiscountValue = 101 }, true},
		{"percentage at 100", func(p *Promotion) { p.DiscountValue = 100 }, false},
		{"percentage zero", func(p *Promotion) { p.DiscountValue = 0 }, true},
		{"fixed positive", func(p *Promotion) {
			p.DiscountType = DiscountTypeFixed
			p.DiscountValue = 500
		}, false},
		{"fixed zero", func(p *Promotion) {
			p.DiscountType = DiscountTypeFixed
			p.DiscountValue = 0
		}, true},
		{"unknown discount type", func(p *Promotion) { p.DiscountType = "bogo" }, true},
		{"unknown promotion type", func(p *Promotion) { p.PromotionType = "popup" }, true},
		{"homepage without title", func(p *Promotion) { p.ShowOnHomepage = true }, true},
		{"homepage with title", func(p *Promotion) {
			p.ShowOnHomepage = true
			p.Title = "Welcome offer"
		}, false},
		{"end before start", func(p *Promotion) {
			p.StartDate = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
			p.EndDate = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		}, true},
		{"dates in order", func(p *Promotion) {
			p.StartDate = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
			p.EndDate = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			promo := valid()
			tt.mutate(&promo)
			err := promo.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestServiceReviewRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     ServiceReviewRequest
		wantErr bool
	}{
		{"valid", ServiceReviewRequest{TourServiceID: "svc-1", Rating: 4}, false},
		{"missing service", ServiceReviewRequest{Rating: 4}, true},
		{"rating too low", ServiceReviewRequest{TourServiceID: "svc-1", Rating: 0}, true},
		{"rating too high", ServiceReviewRequest{TourServiceID: "svc-1", Rating: 6}, true},
		{"minimum rating", ServiceReviewRequest{TourServiceID: "svc-1", Rating: 1}, false},
		{"maximum rating", ServiceReviewRequest{TourServiceID: "svc-1", Rating: 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
