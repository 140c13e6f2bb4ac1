//go:build !mobile

// Package mobile 只在 -tags mobile 时包含 ebitenmobile 绑定
//
// 普通构建（go build ./...、go test ./...）只编译这个文件，
// 避免 go:embed 找不到由 make prepare-mobile 复制的 data/ 目录。
package mobile
