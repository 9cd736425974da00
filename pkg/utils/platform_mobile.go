//go:build mobile

package utils

// MobileEmulateEnv 移动端构建下不起作用
const MobileEmulateEnv = "TD_MOBILE_EMULATE"

// IsMobile 移动端构建恒使用触摸布局
func IsMobile() bool {
	return true
}
