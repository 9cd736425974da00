//go:build !android

package utils

// EnsureStorageDir 确保存储目录存在（非 Android 平台的空实现）
// gdata 在桌面平台上会自行创建存储目录
func EnsureStorageDir(appName string) error {
	return nil
}
