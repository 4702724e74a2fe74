package utils

import (
	"reflect"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	// validatorM 存储自定义的验证器函数映射
	// key: 验证规则名称
	// value: 验证函数实现
	validatorM map[string]validator.Func
)

// init 初始化验证器映射
func init() {
	validatorM = map[string]validator.Func{
		"d_gt_0": decimalPositive, // 金额必须为正
	}
}

// decimalPositive 验证金额字段(decimal)是否为正数
// decimal.Decimal 先经 decimalToString 转为字符串再进入验证器
var decimalPositive validator.Func = func(fl validator.FieldLevel) bool {
	raw, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return false
	}
	return d.IsPositive()
}

// decimalToString 将 decimal.Decimal 转换为字符串供验证器处理
func decimalToString(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

// RegisterValidators 向 gin 的 binding 引擎注册自定义验证规则
// 在路由初始化时调用一次
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterCustomTypeFunc(decimalToString, decimal.Decimal{})
	for name, fn := range validatorM {
		// 注册失败说明规则名冲突, 属于编码错误
		if err := v.RegisterValidation(name, fn); err != nil {
			panic(err)
		}
	}
}
