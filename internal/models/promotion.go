package models

import (
	"errors"
	"fmt"
	"time"
)

// DiscountType represents how a promotion discounts a booking
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// PromotionType distinguishes homepage banners from promo codes
type PromotionType string

const (
	PromotionTypeBanner    PromotionType = "banner"
	PromotionTypePromoCode PromotionType = "promo_code"
)

// Promotion represents a promotion as managed in the admin back-office
type Promotion struct {
	ID             string        `json:"id,omitempty"`
	Code           string        `json:"code"`
	DiscountType   DiscountType  `json:"discount_type"`
	DiscountValue  float64       `json:"discount_value"`
	MaxUses        int           `json:"max_uses"`
	StartDate      time.Time     `json:"start_date"`
	EndDate        time.Time     `json:"end_date"`
	Conditions     string        `json:"conditions,omitempty"`
	IsActive       bool          `json:"is_active"`
	ShowOnHomepage bool          `json:"show_on_homepage"`
	PromotionType  PromotionType `json:"promotion_type"`
	Title          string        `json:"title,omitempty"`
	Subtitle       string        `json:"subtitle,omitempty"`
	Image          string        `json:"image,omitempty"`
	Highlight      string        `json:"highlight,omitempty"`
	Terms          string        `json:"terms,omitempty"`
}

// Validate validates a promotion before create/update
func (p *Promotion) Validate() error {
	if p.Code == "" {
		return errors.New("code is required")
	}
	switch p.DiscountType {
	case DiscountTypePercentage:
		if p.DiscountValue <= 0 || p.DiscountValue > 100 {
			return errors.New("percentage discount_value must be between 0 and 100")
		}
	case DiscountTypeFixed:
		if p.DiscountValue <= 0 {
			return errors.New("fixed discount_value must be positive")
		}
	default:
		return fmt.Errorf("invalid discount_type: %s", p.DiscountType)
	}
	if p.PromotionType != PromotionTypeBanner && p.PromotionType != PromotionTypePromoCode {
		return fmt.Errorf("invalid promotion_type: %s", p.PromotionType)
	}
	if p.ShowOnHomepage && p.Title == "" {
		return errors.New("title is required when show_on_homepage is set")
	}
	if !p.EndDate.IsZero() && !p.StartDate.IsZero() && p.EndDate.Before(p.StartDate) {
		return errors.New("end_date must not be before start_date")
	}
	return nil
}

// HomepagePromotions is the public homepage payload: banners plus promo codes
type HomepagePromotions struct {
	Banners    []Promotion `json:"banners"`
	PromoCodes []Promotion `json:"promo_codes"`
}
