//go:build !mobile

package utils

import (
	"os"
	"strconv"
)

// MobileEmulateEnv 为真值（1/true）时桌面端也使用触摸布局，便于本地调试
const MobileEmulateEnv = "TD_MOBILE_EMULATE"

// IsMobile 是否使用触摸布局
func IsMobile() bool {
	v, ok := os.LookupEnv(MobileEmulateEnv)
	if !ok {
		return false
	}
	on, err := strconv.ParseBool(v)
	return err == nil && on
}
