// Package main 是离线命令行工具 aquactl 的入口，用于在本地调用评分与聊天解析，以及维护知识库文档。
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
