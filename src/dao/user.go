package dao

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/errcode"
	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/stores/gdb/auctionmodel"
)

// GetUserById 查询单个用户
// 功能: 竞拍资格校验需要获取出价人的评价聚合信息 (好评率 / 评价总数)
func (d *Dao) GetUserById(ctx context.Context, userId int64) (*auctionmodel.User, error) {
	var user auctionmodel.User
	// SQL 逻辑:
	// SELECT * FROM ob_user WHERE id = ? LIMIT 1
	err := d.DB.WithContext(ctx).Table(auctionmodel.UserTableName()).
		Where("id = ?", userId).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(errcode.ErrNotFound, "user not found")
		}
		return nil, errors.Wrap(err, "failed on get user info")
	}

	return &user, nil
}
