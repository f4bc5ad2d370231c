// Package pricing implements price calculations that span the customer and
// order aggregates.
package pricing

import (
	"order-events-demo/domain/customer"
	"order-events-demo/domain/order"
	"order-events-demo/domain/shared"
)

const (
	goldPointsThreshold   = 2000
	silverPointsThreshold = 1000
	goldRate              = 0.10
	silverRate            = 0.05
	bulkOrderRate         = 0.02
	maxDiscountRate       = 0.30
)

var (
	bulkOrderThreshold    = shared.MustYen(10000)
	freeShippingThreshold = shared.MustYen(5000)
	standardShippingFee   = shared.MustYen(500)
)

// Service is a stateless pricing domain service.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// CalculateDiscount computes the discount for a customer's order. Loyalty
// tiers grant 10% at 2000+ points or 5% at 1000+, large orders add a flat
// 2%, and the combined rate is clamped at 30%. Non-active customers get no
// discount regardless of points.
func (s *Service) CalculateDiscount(c *customer.Customer, o *order.Order) (shared.Money, error) {
	total := o.TotalAmount()
	if !c.IsActive() {
		return shared.Zero(total.Currency()), nil
	}

	rate := 0.0
	switch {
	case c.LoyaltyPoints() >= goldPointsThreshold:
		rate = goldRate
	case c.LoyaltyPoints() >= silverPointsThreshold:
		rate = silverRate
	}

	isBulk, err := total.GreaterThanOrEqual(bulkOrderThreshold)
	if err != nil {
		return shared.Money{}, err
	}
	if isBulk {
		rate += bulkOrderRate
	}
	if rate > maxDiscountRate {
		rate = maxDiscountRate
	}

	return total.Multiply(rate)
}

// CalculateShippingFee returns the flat shipping fee, waived for orders at
// or above the free-shipping threshold.
func (s *Service) CalculateShippingFee(o *order.Order) (shared.Money, error) {
	free, err := o.TotalAmount().GreaterThanOrEqual(freeShippingThreshold)
	if err != nil {
		return shared.Money{}, err
	}
	if free {
		return shared.Zero(o.TotalAmount().Currency()), nil
	}
	return standardShippingFee, nil
}

// CalculateFinalAmount is total minus discount plus shipping.
func (s *Service) CalculateFinalAmount(c *customer.Customer, o *order.Order) (shared.Money, error) {
	discount, err := s.CalculateDiscount(c, o)
	if err != nil {
		return shared.Money{}, err
	}
	afterDiscount, err := o.TotalAmount().Subtract(discount)
	if err != nil {
		return shared.Money{}, err
	}
	shipping, err := s.CalculateShippingFee(o)
	if err != nil {
		return shared.Money{}, err
	}
	return afterDiscount.Add(shipping)
}
