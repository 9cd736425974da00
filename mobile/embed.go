//go:build mobile

// embed.go - 移动端数据嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// 构建前需要把 data/ 复制到本目录：
//
//	cp -r data mobile/data
//	ebitenmobile bind -target android -tags mobile -javapkg com.decker.towerdefense -o build/towerdefense.aar ./mobile
package mobile

import "embed"

//go:embed data/game.yaml data/towers.yaml data/enemies.yaml data/levels
var dataFS embed.FS
