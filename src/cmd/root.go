package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd 根命令, 子命令 (daemon) 挂载在它下面
var rootCmd = &cobra.Command{
	Use:   "bidstorm",
	Short: "BidStorm auction backend.",
}

// Execute 解析命令行参数并执行相应的命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	// 全局配置文件路径参数, 默认 ./config/config.toml
	rootCmd.PersistentFlags().StringVar(&cfgFile, "conf", "./config/config.toml", "conf file path")
}

// initConfig 将配置文件路径注入 viper
// 具体的读取与解析由 config.UnmarshalCmdConfig 完成
func initConfig() {
	viper.SetConfigFile(cfgFile)
	viper.SetConfigType("toml")
}
