package auctionmodel

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAuctionEnded(t *testing.T) {
	a := &Auction{EndTime: 1000}

	assert.False(t, a.Ended(999))
	// 到达结束时间即视为结束
	assert.True(t, a.Ended(1000))
	assert.True(t, a.Ended(1001))

	// 手动标志优先于时间
	a = &Auction{EndTime: 1000, IsEnded: true}
	assert.True(t, a.Ended(0))
}

func TestHasBuyNowPrice(t *testing.T) {
	a := &Auction{}
	assert.False(t, a.HasBuyNowPrice())

	a.BuyNowPrice = decimal.NewNullDecimal(decimal.NewFromInt(30000000))
	assert.True(t, a.HasBuyNowPrice())
}

func TestRatingPercentage(t *testing.T) {
	// 无评价返回 0, 与差评区分由调用方结合 RatingTotal 判断
	u := &User{}
	assert.Equal(t, float64(0), u.RatingPercentage())

	u = &User{RatingTotal: 10, RatingPositive: 8}
	assert.Equal(t, float64(80), u.RatingPercentage())
	assert.GreaterOrEqual(t, u.RatingPercentage(), RatingEligibleThreshold)

	u = &User{RatingTotal: 3, RatingPositive: 2}
	assert.Less(t, u.RatingPercentage(), RatingEligibleThreshold)
}
