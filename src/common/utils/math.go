package utils

// Max 返回两个 int64 整数中的较大值
func Max(x, y int64) int64 {
	if x < y {
		return y
	}
	return x
}
