//go:build !mobile

// 普通构建时 mobile 包只有这个文件，ebitenmobile bind 使用 -tags mobile
package mobile

// Dummy 让包在桌面构建中也能被引用
func Dummy() {}
