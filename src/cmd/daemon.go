package cmd

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof" // 引入 pprof 用于性能分析
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/m0nters/BidStorm-Backend-sub000/src/api/router"
	"github.com/m0nters/BidStorm-Backend-sub000/src/app"
	"github.com/m0nters/BidStorm-Backend-sub000/src/config"
	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/logger/xzap"
	"github.com/m0nters/BidStorm-Backend-sub000/src/service/svc"
)

// DaemonCmd 定义了 "daemon" 子命令
var DaemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "run bidstorm auction api server.", // 命令简短描述：启动竞拍 API 服务
	Long:  "run bidstorm auction api server.",
	Run: func(cmd *cobra.Command, args []string) {
		// 使用 WaitGroup 等待所有 goroutine 完成
		wg := &sync.WaitGroup{}
		wg.Add(1)

		// 创建一个带有取消功能的 Context，用于优雅退出
		ctx, cancel := context.WithCancel(context.Background())

		// 服务退出信号通知chan，用于接收启动或运行过程中的错误
		onSrvExit := make(chan error, 1)

		// 启动一个 goroutine 来运行主服务逻辑
		go func() {
			defer wg.Done() // goroutine 结束时减少 WaitGroup 计数

			// 1. 读取和解析配置文件 (config.toml)
			cfg, err := config.UnmarshalCmdConfig()
			if err != nil {
				xzap.WithContext(ctx).Error("Failed to unmarshal config", zap.Error(err))
				onSrvExit <- err // 发送错误信号
				return
			}

			// 2. 初始化服务上下文 (Context)，包含 DB / Redis / 日志等
			serverCtx, err := svc.NewServiceContext(cfg)
			if err != nil {
				xzap.WithContext(ctx).Error("Failed to create service context", zap.Error(err))
				onSrvExit <- err
				return
			}

			xzap.WithContext(ctx).Info("api server start", zap.Any("config", cfg))

			// 3. 如果配置开启了 Pprof，启动 HTTP 服务进行性能监控
			if cfg.Monitor != nil && cfg.Monitor.PprofEnable {
				go func() {
					_ = http.ListenAndServe(fmt.Sprintf("0.0.0.0:%d", cfg.Monitor.PprofPort), nil)
				}()
			}

			// 4. 初始化 Gin 路由实例并启动平台 (阻塞调用)
			r := router.NewRouter(serverCtx)
			platform, err := app.NewPlatform(cfg, r, serverCtx)
			if err != nil {
				xzap.WithContext(ctx).Error("Failed to create platform", zap.Error(err))
				onSrvExit <- err
				return
			}
			platform.Start()
		}()

		// 信号通知chan，用于接收系统信号
		onSignal := make(chan os.Signal, 1)
		// 监听 SIGINT (Ctrl+C) 和 SIGTERM (kill) 信号，实现优雅退出
		signal.Notify(onSignal, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-onSignal: // 收到系统信号
			cancel() // 取消 Context，通知所有子 goroutine 退出
			xzap.WithContext(ctx).Info("Exit by signal", zap.String("signal", sig.String()))
			os.Exit(0)
		case err := <-onSrvExit: // 收到服务内部错误
			cancel()
			xzap.WithContext(ctx).Error("Exit by error", zap.Error(err))
		}

		// 等待所有 goroutine 退出
		wg.Wait()
	},
}

func init() {
	// 将 daemon 命令添加到 root 命令中，使其可以被执行
	rootCmd.AddCommand(DaemonCmd)
}
