package errcode

import (
	"fmt"

	"github.com/pkg/errors"
)

// Err 业务错误类型
// 携带一个业务错误码 (code) 和对外展示的错误信息 (msg)
// 错误码用于客户端区分错误种类, msg 用于直接展示
type Err struct {
	code uint32
	msg  string
}

// NewErr 创建一个新的业务错误
func NewErr(code uint32, msg string) *Err {
	return &Err{
		code: code,
		msg:  msg,
	}
}

// NewCustomErr 创建自定义错误
// 用于没有预定义错误码的场景, 统一使用 CodeCustom
func NewCustomErr(msg string) *Err {
	return NewErr(CodeCustom, msg)
}

// Error 实现 error 接口
func (e *Err) Error() string {
	return fmt.Sprintf("code: %d, msg: %s", e.code, e.msg)
}

// Code 返回业务错误码
func (e *Err) Code() uint32 {
	return e.code
}

// Msg 返回错误信息
func (e *Err) Msg() string {
	return e.msg
}

// Is 支持 errors.Is 按错误码比较
// 两个 *Err 只要 code 相同即视为同一类错误
func (e *Err) Is(target error) bool {
	t, ok := target.(*Err)
	if !ok {
		return false
	}
	return e.code == t.code
}

// ParseErr 将任意 error 解析为业务错误
// 处理逻辑:
// 1. 先用 errors.Cause 剥掉 pkg/errors 的包装层
// 2. 如果底层是 *Err, 直接返回
// 3. 否则归类为未知错误 (ErrUnexpected), 不向客户端泄露内部细节
func ParseErr(err error) *Err {
	if err == nil {
		return nil
	}
	cause := errors.Cause(err)
	if e, ok := cause.(*Err); ok {
		return e
	}
	return ErrUnexpected
}

// IsErrCode 判断错误(可能被 Wrap 过)是否属于指定的业务错误
func IsErrCode(err error, target *Err) bool {
	if err == nil || target == nil {
		return false
	}
	return ParseErr(err).code == target.code
}
