package errcode

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestParseErr(t *testing.T) {
	// 业务错误原样解析
	assert.Equal(t, ErrAuctionEnded, ParseErr(ErrAuctionEnded))

	// Wrap 过的业务错误能剥壳取回
	wrapped := errors.Wrap(ErrSelfBid, "failed on place bid")
	assert.Equal(t, ErrSelfBid, ParseErr(wrapped))

	// 非业务错误统一归为未知错误
	assert.Equal(t, ErrUnexpected, ParseErr(errors.New("db gone")))

	assert.Nil(t, ParseErr(nil))
}

func TestIsErrCode(t *testing.T) {
	wrapped := errors.WithStack(ErrBidderBlocked)

	assert.True(t, IsErrCode(wrapped, ErrBidderBlocked))
	assert.False(t, IsErrCode(wrapped, ErrSelfBid))
	assert.False(t, IsErrCode(nil, ErrSelfBid))
}

func TestErrIs(t *testing.T) {
	// errors.Is 按错误码判等
	assert.True(t, errors.Is(NewErr(CodeSelfBid, "other msg"), ErrSelfBid))
	assert.False(t, errors.Is(ErrSelfBid, ErrAuctionEnded))
}
