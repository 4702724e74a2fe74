package mq

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/stores/xkv"
)

// 通知事件类型
const (
	EventBidAccepted = "bid_accepted" // 出价成功落地
	EventBidRejected = "bid_rejected" // 卖家拒绝出价人, 价格/领先者被重置
	EventBoughtNow   = "bought_now"   // 一口价成交, 拍卖终结
)

const QueueBidNotifyKey = "queue:%s:bid:notify"

// GetBidNotifyQueueKey 生成通知队列 key
func GetBidNotifyQueueKey(project string) string {
	return fmt.Sprintf(QueueBidNotifyKey, strings.ToLower(project))
}

// NotifyEvent 出价相关通知事件
// 提交成功之后推入 Redis 队列, 由独立的通知服务消费,
// 负责收件人解析/昵称打码/邮件内容渲染等展示层工作
type NotifyEvent struct {
	Type      string          `json:"type"`                // 事件类型
	AuctionId int64           `json:"auction_id"`          // 拍卖 ID
	BidId     string          `json:"bid_id,omitempty"`    // 触发事件的出价记录 ID
	BidderId  int64           `json:"bidder_id,omitempty"` // 出价人 / 被拒绝人 ID
	Price     decimal.Decimal `json:"price"`               // 事件落地后的展示价
	LeaderId  int64           `json:"leader_id"`           // 事件落地后的领先者 (0 表示无)
	EndTime   int64           `json:"end_time,omitempty"`  // 事件落地后的结束时间
	EventTime int64           `json:"event_time"`          // 事件发生时间 (unix 秒)
}

// PushNotifyEvent 将通知事件推入队列
// 功能:
// 1. 将事件序列化为 JSON
// 2. Lpush 到 Redis 列表队列
// 注意: 该函数在提交事务之后调用, 失败只记录日志重试, 绝不回滚已提交的出价
func PushNotifyEvent(kvStore *xkv.Store, project string, event *NotifyEvent) error {
	rawInfo, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "failed on marshal notify event")
	}

	if _, err := kvStore.Lpush(GetBidNotifyQueueKey(project), string(rawInfo)); err != nil {
		return errors.Wrap(err, "failed on push notify event to queue")
	}

	return nil
}
