package config

import (
	"os"

	"github.com/decker502/pomburst/pkg/embedded"
)

// readConfigFile 读取配置文件
// 嵌入资源中存在同名文件（data/ 开头）时优先使用，否则从磁盘读取
func readConfigFile(path string) ([]byte, error) {
	if embedded.Exists(path) {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}
