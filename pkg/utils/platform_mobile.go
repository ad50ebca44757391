//go:build mobile

package utils

// IsMobile 移动端构建始终使用触屏提示和 mobile 素材变体
func IsMobile() bool {
	return true
}
