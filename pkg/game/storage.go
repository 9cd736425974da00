package game

import (
	"log"

	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/towerdefense/pkg/utils"
)

// StorageAppName gdata 存储使用的应用名
const StorageAppName = "towerdefense"

// OpenStorage 打开跨平台持久化存储
// 失败时返回 nil，调用方按降级模式（仅内存）运行
func OpenStorage(appName string) *gdata.Manager {
	if err := utils.EnsureStorageDir(appName); err != nil {
		log.Printf("[Storage] Warning: %v", err)
	}

	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[Storage] Warning: Failed to open gdata storage: %v (settings and high scores will not persist)", err)
		return nil
	}
	return manager
}
