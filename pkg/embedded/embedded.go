// Package embedded 访问随程序一起打包的 data/ 配置
//
// //go:embed 只能引用所在包目录下的文件，所以 embed.FS 声明在项目根目录
// 和 mobile/ 中，启动时通过 Init 交给本包。美术资源不嵌入。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
)

// ErrNotInitialized Init 之前读取
var ErrNotInitialized = errors.New("embedded data not initialized, call Init() first")

const dataPrefix = "data/"

var dataFS fs.FS

// Init 设置嵌入文件系统，需要在加载任何配置之前调用
// 测试可以传入 fstest.MapFS
func Init(data fs.FS) {
	dataFS = data
}

// IsInitialized 是否已经调用过 Init
func IsInitialized() bool {
	return dataFS != nil
}

// reset 仅供测试使用
func reset() {
	dataFS = nil
}

// clean 把磁盘风格的路径转换为 embed.FS 使用的形式
func clean(name string) (string, error) {
	if dataFS == nil {
		return "", ErrNotInitialized
	}

	name = path.Clean(filepath.ToSlash(name))
	if !strings.HasPrefix(name, dataPrefix) {
		return "", fmt.Errorf("embedded path %q must start with %q", name, dataPrefix)
	}
	return name, nil
}

// ReadFile 读取 data/ 下的嵌入文件
func ReadFile(name string) ([]byte, error) {
	name, err := clean(name)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, name)
}

// Exists 嵌入文件是否存在
func Exists(name string) bool {
	name, err := clean(name)
	if err != nil {
		return false
	}
	_, err = fs.Stat(dataFS, name)
	return err == nil
}
