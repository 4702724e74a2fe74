package service

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m0nters/BidStorm-Backend-sub000/src/config"
	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/errcode"
	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/lockx"
	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/stores/gdb/auctionmodel"
	"github.com/m0nters/BidStorm-Backend-sub000/src/service/svc"
)

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestComputeProxyBid_FirstBid(t *testing.T) {
	// 无领先者: 首次出价以当前展示价(起拍价)落地, 新出价人直接领先
	res := computeProxyBid(d(20000000), d(100000), 0, decimal.Zero, false, 101, d(25000000))

	assert.True(t, res.NewPrice.Equal(d(20000000)))
	assert.Equal(t, int64(101), res.NewLeaderId)
}

func TestComputeProxyBid_BelowCeilingAboveCurrent(t *testing.T) {
	// 新上限打不过现任上限但高于当前价: 价格抬到新上限, 领先者不变
	res := computeProxyBid(d(20000000), d(100000), 101, d(25000000), true, 102, d(24000000))

	assert.True(t, res.NewPrice.Equal(d(24000000)))
	assert.Equal(t, int64(101), res.NewLeaderId)
}

func TestComputeProxyBid_ShadowBid(t *testing.T) {
	// 影子出价: 新上限不高于当前价, 价格与领先者均不变
	res := computeProxyBid(d(24000000), d(100000), 101, d(25000000), true, 102, d(23000000))

	assert.True(t, res.NewPrice.Equal(d(24000000)))
	assert.Equal(t, int64(101), res.NewLeaderId)
}

func TestComputeProxyBid_EqualCeilingKeepsIncumbent(t *testing.T) {
	// 新上限与现任上限相同: 现任保持领先 (先到先得), 价格抬到上限
	res := computeProxyBid(d(20000000), d(100000), 101, d(25000000), true, 102, d(25000000))

	assert.True(t, res.NewPrice.Equal(d(25000000)))
	assert.Equal(t, int64(101), res.NewLeaderId)
}

func TestComputeProxyBid_Overtake(t *testing.T) {
	// 新上限超过现任上限: 价格为现任上限 + 步长, 新出价人取代领先
	res := computeProxyBid(d(24000000), d(100000), 101, d(25000000), true, 102, d(26000000))

	assert.True(t, res.NewPrice.Equal(d(25100000)))
	assert.Equal(t, int64(102), res.NewLeaderId)
}

// TestProxyBidSequence 按完整场景走一遍价格推演
// 起拍价 2000万, 步长 10万, 一口价 3000万:
// 1. A 上限 2500万 → 价格 2000万, A 领先
// 2. B 上限 2400万 → 价格 2400万, A 仍领先
// 3. B 上限 2600万 → 价格 2510万, B 领先
// 4. A 上限 3100万 → 达到一口价, 走一口价通道
func TestProxyBidSequence(t *testing.T) {
	step := d(100000)
	buyNow := d(30000000)
	var (
		a int64 = 101
		b int64 = 102
	)

	// 1. A 首次出价
	r1 := computeProxyBid(d(20000000), step, 0, decimal.Zero, false, a, d(25000000))
	require.True(t, r1.NewPrice.Equal(d(20000000)))
	require.Equal(t, a, r1.NewLeaderId)

	// 2. B 出价 2400万, 打不过 A 的 2500万上限
	r2 := computeProxyBid(r1.NewPrice, step, a, d(25000000), true, b, d(24000000))
	require.True(t, r2.NewPrice.Equal(d(24000000)))
	require.Equal(t, a, r2.NewLeaderId)

	// 3. B 抬上限到 2600万, 超过 A 的 2500万
	r3 := computeProxyBid(r2.NewPrice, step, a, d(25000000), true, b, d(26000000))
	require.True(t, r3.NewPrice.Equal(d(25100000)))
	require.Equal(t, b, r3.NewLeaderId)

	// 4. A 上限 3100万 达到一口价, 协调方会路由到一口价通道
	require.True(t, d(31000000).GreaterThanOrEqual(buyNow))
}

// TestRouteBid 通道决策与最小加价边界
// 当前价 2000万, 步长 10万, 一口价 3000万
func TestRouteBid(t *testing.T) {
	auction := newTestAuction()
	auction.BuyNowPrice = decimal.NewNullDecimal(d(30000000))

	tests := []struct {
		name    string
		maxBid  decimal.Decimal
		buyNow  bool
		wantErr *errcode.Err
	}{
		{"低于最小加价", d(20099999), false, errcode.ErrInvalidBidAmount},
		{"等于当前价", d(20000000), false, errcode.ErrInvalidBidAmount},
		{"恰好满足最小加价", d(20100000), false, nil},
		{"一口价以下一个单位", d(29999999), false, nil},
		{"恰好达到一口价", d(30000000), true, nil},
		{"超过一口价", d(31000000), true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buyNow, err := routeBid(auction, tt.maxBid)
			assert.Equal(t, tt.buyNow, buyNow)
			if tt.wantErr != nil {
				assert.True(t, errcode.IsErrCode(err, tt.wantErr))
			} else {
				assert.NoError(t, err)
			}
		})
	}

	// 未配置一口价时再大的上限也不走一口价通道
	plain := newTestAuction()
	buyNow, err := routeBid(plain, d(999999999))
	assert.False(t, buyNow)
	assert.NoError(t, err)
}

func TestComputeAutoExtend(t *testing.T) {
	now := int64(10000)

	// 未开启自动延时: 保持不变
	assert.Equal(t, now+100, computeAutoExtend(false, now+100, now, 5, 10))

	// 开启且进入触发窗口 (距结束不足 5 分钟): 延长 10 分钟
	assert.Equal(t, now+100+600, computeAutoExtend(true, now+100, now, 5, 10))

	// 开启但距结束还早: 保持不变
	assert.Equal(t, now+3600, computeAutoExtend(true, now+3600, now, 5, 10))

	// 边界: 距结束恰好等于触发窗口时不延长
	assert.Equal(t, now+300, computeAutoExtend(true, now+300, now, 5, 10))

	// 连续触发可以反复延长, 没有累计上限
	end := now + 100
	for i := 0; i < 5; i++ {
		end = computeAutoExtend(true, end, now, 60, 10)
	}
	assert.Equal(t, now+100+5*600, end)
}

func TestPickLeader(t *testing.T) {
	// 最大上限优先
	bids := []auctionmodel.Bid{
		{Id: 3, BidderId: 102, MaxBidAmount: d(26000000), CreateTime: 300},
		{Id: 2, BidderId: 102, MaxBidAmount: d(24000000), CreateTime: 200},
		{Id: 1, BidderId: 101, MaxBidAmount: d(25000000), CreateTime: 100},
	}
	top := pickLeader(bids)
	require.NotNil(t, top)
	assert.Equal(t, int64(3), top.Id)

	// 上限相同按时间最早者
	bids = []auctionmodel.Bid{
		{Id: 2, BidderId: 102, MaxBidAmount: d(25000000), CreateTime: 200},
		{Id: 1, BidderId: 101, MaxBidAmount: d(25000000), CreateTime: 100},
	}
	top = pickLeader(bids)
	require.NotNil(t, top)
	assert.Equal(t, int64(1), top.Id)

	// 时间也相同按 id 最小者
	bids = []auctionmodel.Bid{
		{Id: 2, BidderId: 102, MaxBidAmount: d(25000000), CreateTime: 100},
		{Id: 1, BidderId: 101, MaxBidAmount: d(25000000), CreateTime: 100},
	}
	top = pickLeader(bids)
	require.NotNil(t, top)
	assert.Equal(t, int64(1), top.Id)

	// 空账本
	assert.Nil(t, pickLeader(nil))
}

func newTestAuction() *auctionmodel.Auction {
	return &auctionmodel.Auction{
		Id:            1,
		SellerId:      100,
		StartingPrice: d(20000000),
		CurrentPrice:  d(20000000),
		PriceStep:     d(100000),
		EndTime:       20000,
	}
}

func TestCheckBuyNowEligibility(t *testing.T) {
	auction := newTestAuction()
	now := int64(10000)

	// 正常通过
	assert.NoError(t, checkBuyNowEligibility(auction, 101, false, now))

	// 已过结束时间
	err := checkBuyNowEligibility(auction, 101, false, 20000)
	assert.True(t, errcode.IsErrCode(err, errcode.ErrAuctionEnded))

	// 手动结束标志
	ended := newTestAuction()
	ended.IsEnded = true
	err = checkBuyNowEligibility(ended, 101, false, now)
	assert.True(t, errcode.IsErrCode(err, errcode.ErrAuctionEnded))

	// 卖家自拍
	err = checkBuyNowEligibility(auction, 100, false, now)
	assert.True(t, errcode.IsErrCode(err, errcode.ErrSelfBid))

	// 黑名单
	err = checkBuyNowEligibility(auction, 101, true, now)
	assert.True(t, errcode.IsErrCode(err, errcode.ErrBidderBlocked))
}

func TestCheckBidEligibility_Rating(t *testing.T) {
	auction := newTestAuction()
	now := int64(10000)

	// 好评率达标
	good := &auctionmodel.User{Id: 101, RatingTotal: 10, RatingPositive: 8}
	assert.NoError(t, checkBidEligibility(auction, good, false, now))

	// 好评率不达标
	bad := &auctionmodel.User{Id: 101, RatingTotal: 10, RatingPositive: 7}
	err := checkBidEligibility(auction, bad, false, now)
	assert.True(t, errcode.IsErrCode(err, errcode.ErrLowRating))

	// 无评价且拍卖不允许
	unrated := &auctionmodel.User{Id: 101}
	err = checkBidEligibility(auction, unrated, false, now)
	assert.True(t, errcode.IsErrCode(err, errcode.ErrUnratedBidder))

	// 无评价但拍卖允许
	allow := newTestAuction()
	allow.AllowUnratedBidders = true
	assert.NoError(t, checkBidEligibility(allow, unrated, false, now))

	// 结束检查优先于评价检查
	err = checkBidEligibility(auction, unrated, false, 30000)
	assert.True(t, errcode.IsErrCode(err, errcode.ErrAuctionEnded))
}

// TestLockWaitSurfacesConflict 拍卖锁被长期占用时,
// 出价 / 一口价 / 拒绝都在限定等待后按并发冲突返回, 不无限排队
func TestLockWaitSurfacesConflict(t *testing.T) {
	svcCtx := svc.NewServerCtx()
	svcCtx.C = &config.Config{Bid: config.BidCfg{LockWaitMs: 30}}

	const auctionId = int64(7)
	svcCtx.AuctionLock.Lock(auctionId)
	defer svcCtx.AuctionLock.Unlock(auctionId)

	ctx := context.Background()

	_, err := PlaceBid(ctx, svcCtx, auctionId, 101, d(20100000))
	assert.True(t, errcode.IsErrCode(err, errcode.ErrConcurrencyConflict))

	_, err = BuyNow(ctx, svcCtx, auctionId, 101)
	assert.True(t, errcode.IsErrCode(err, errcode.ErrConcurrencyConflict))

	err = RejectBidder(ctx, svcCtx, auctionId, 100, 101)
	assert.True(t, errcode.IsErrCode(err, errcode.ErrConcurrencyConflict))
}

// TestConcurrentBidsMatchSerialReplay 并发出价的可串行化校验:
// N 个 goroutine 经拍卖锁串行落地后, 最终 (价格, 领先者)
// 必须与按实际提交顺序串行重放得到的结果完全一致
func TestConcurrentBidsMatchSerialReplay(t *testing.T) {
	type ledgerBid struct {
		bidderId int64
		maxBid   decimal.Decimal
	}
	type auctionState struct {
		price     decimal.Decimal
		leaderId  int64
		leaderMax decimal.Decimal
		hasLeader bool
	}

	step := d(100000)
	apply := func(s *auctionState, b ledgerBid) {
		r := computeProxyBid(s.price, step, s.leaderId, s.leaderMax, s.hasLeader, b.bidderId, b.maxBid)
		s.price = r.NewPrice
		s.leaderId = r.NewLeaderId
		if r.NewLeaderId == b.bidderId {
			s.leaderMax = b.maxBid
		}
		s.hasLeader = true
	}

	lock := lockx.NewKeyLock()
	state := auctionState{price: d(20000000)}
	var commits []ledgerBid

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		bid := ledgerBid{
			bidderId: int64(100 + i),
			maxBid:   d(20100000 + int64(i)*100000),
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			lock.Lock(1)
			defer lock.Unlock(1)
			apply(&state, bid)
			commits = append(commits, bid)
		}()
	}
	wg.Wait()
	require.Len(t, commits, 50)

	// 按提交顺序串行重放
	replay := auctionState{price: d(20000000)}
	for _, b := range commits {
		apply(&replay, b)
	}

	assert.True(t, state.price.Equal(replay.price))
	assert.Equal(t, replay.leaderId, state.leaderId)
	assert.True(t, state.leaderMax.Equal(replay.leaderMax))
}
