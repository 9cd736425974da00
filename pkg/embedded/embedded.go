// Package embedded 提供嵌入数据文件的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让其他包可以访问嵌入的数据。
//
// 未初始化或嵌入数据中不存在的文件会回退到本地文件系统，
// 因此测试和命令行工具可以直接读取磁盘上的配置。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	dataFS      fs.FS
	initialized bool
)

// Init 初始化嵌入的数据文件系统
// 应在 main() 开始时、任何配置加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// Reset 清除初始化状态（测试用）
func Reset() {
	dataFS = nil
	initialized = false
}

// normalize 标准化路径分隔符并移除 "./" 前缀（embed.FS 使用正斜杠）
func normalize(path string) string {
	path = filepath.ToSlash(path)
	return strings.TrimPrefix(path, "./")
}

// isEmbeddedPath 路径是否指向嵌入数据（以 "data/" 开头）
func isEmbeddedPath(path string) bool {
	return strings.HasPrefix(path, "data/")
}

// ReadFile 读取文件内容
// 优先读取嵌入数据，找不到时回退到本地文件系统
func ReadFile(path string) ([]byte, error) {
	p := normalize(path)
	if initialized && isEmbeddedPath(p) {
		data, err := fs.ReadFile(dataFS, p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read embedded file %s: %w", p, err)
		}
	}
	return os.ReadFile(path)
}

// Exists 检查文件是否存在（嵌入数据或本地文件系统）
func Exists(path string) bool {
	p := normalize(path)
	if initialized && isEmbeddedPath(p) {
		if _, err := fs.Stat(dataFS, p); err == nil {
			return true
		}
	}
	_, err := os.Stat(path)
	return err == nil
}

// Glob 匹配文件
// 嵌入数据中有匹配时返回嵌入结果，否则匹配本地文件系统
func Glob(pattern string) ([]string, error) {
	p := normalize(pattern)
	if initialized && isEmbeddedPath(p) {
		matches, err := fs.Glob(dataFS, p)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %s: %w", pattern, err)
		}
		if len(matches) > 0 {
			return matches, nil
		}
	}
	return filepath.Glob(pattern)
}
