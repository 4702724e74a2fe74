package auctionmodel

const UserTable = "ob_user"

// RatingEligibleThreshold 参与竞拍要求的最低好评率 (百分比)
const RatingEligibleThreshold = 80.0

// User 用户信息
// 这里只承载竞拍资格校验需要的评价聚合字段
type User struct {
	Id             int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`          // 用户 ID
	Nickname       string `gorm:"column:nickname" json:"nickname"`                       // 昵称
	RatingTotal    int64  `gorm:"column:rating_total" json:"rating_total"`               // 收到的评价总数
	RatingPositive int64  `gorm:"column:rating_positive" json:"rating_positive"`         // 好评数
	CreateTime     int64  `gorm:"column:create_time;autoCreateTime" json:"create_time"`  // 创建时间
}

func UserTableName() string {
	return UserTable
}

// RatingPercentage 好评率 (0~100)
// 没有任何评价时返回 0, 由调用方结合 RatingTotal 区分"无评价"和"差评"
func (u *User) RatingPercentage() float64 {
	if u.RatingTotal == 0 {
		return 0
	}
	return float64(u.RatingPositive) / float64(u.RatingTotal) * 100
}
