// embed.go - 配置嵌入声明
// 必须放在项目根目录（与 data/ 同级）
// 因为 //go:embed 指令只能嵌入当前包目录及其子目录的文件
//
// 美术资源不嵌入：图集从 --assets 目录读取，缺失时使用程序化占位帧
package main

import "embed"

//go:embed data/spawner.yaml data/assets.yaml
var dataFS embed.FS
