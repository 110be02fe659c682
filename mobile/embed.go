//go:build mobile

// embed.go - 移动端资源嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// mobile/data/scroller.yaml 是根目录 data/scroller.yaml 的副本，修改时需同步：
//
//	cp data/scroller.yaml mobile/data/
//	go build -tags mobile ./mobile
package mobile

import "embed"

//go:embed data/scroller.yaml
var dataFS embed.FS
