package main

import (
	"github.com/m0nters/BidStorm-Backend-sub000/src/cmd"
)

// main 是程序的入口函数
// 执行 go run src/main.go daemon 启动竞拍 API 服务
func main() {
	// 调用 cmd 包的 Execute 方法，解析命令行参数并执行相应的命令
	cmd.Execute()
}
