//go:build !mobile

// 普通构建时 mobile 包只包含此文件。
// ebitenmobile 绑定代码见 mobile.go 与 embed.go（需要 -tags mobile）。
package mobile

// Dummy 与移动端构建导出同名函数，保证 ./... 在桌面端也能编译
func Dummy() {}
