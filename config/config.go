// Package config 站点配置信息
package config

// Initialize 触发本包所有 init 函数完成配置注册
func Initialize() {
	// 各配置文件通过 init() 自行注册，这里什么都不用做
}
