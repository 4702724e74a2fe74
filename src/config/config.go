package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/logger/xzap"
	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/stores/gdb"
)

// Config 定义了应用程序的全局配置结构
type Config struct {
	Api        ApiCfg      `toml:"api" mapstructure:"api" json:"api"`                         // HTTP 服务配置
	Log        xzap.Config `toml:"log" mapstructure:"log" json:"log"`                         // 日志配置
	Kv         *KvConf     `toml:"kv" mapstructure:"kv" json:"kv"`                            // KV存储配置 (Redis)
	DB         *gdb.Config `toml:"db" mapstructure:"db" json:"db"`                            // 数据库配置 (MySQL)
	Bid        BidCfg      `toml:"bid" mapstructure:"bid" json:"bid"`                         // 竞拍引擎配置
	Monitor    *Monitor    `toml:"monitor" mapstructure:"monitor" json:"monitor"`             // 监控相关配置
	ProjectCfg ProjectCfg  `toml:"project_cfg" mapstructure:"project_cfg" json:"project_cfg"` // 项目名称配置
}

// ApiCfg HTTP 服务配置
type ApiCfg struct {
	Port string `toml:"port" mapstructure:"port" json:"port"` // 监听地址, 如 ":9100"
}

// BidCfg 竞拍引擎配置
// 自动延时规则: 出价落地时若距离结束时间不足 trigger_minutes 分钟,
// 则把结束时间向后推 extend_minutes 分钟
type BidCfg struct {
	AutoExtendTriggerMinutes int64 `toml:"auto_extend_trigger_minutes" mapstructure:"auto_extend_trigger_minutes" json:"auto_extend_trigger_minutes"` // 触发窗口 (分钟)
	AutoExtendByMinutes      int64 `toml:"auto_extend_by_minutes" mapstructure:"auto_extend_by_minutes" json:"auto_extend_by_minutes"`                // 每次延长时长 (分钟)
	CommitRetryTimes         int   `toml:"commit_retry_times" mapstructure:"commit_retry_times" json:"commit_retry_times"`                            // 乐观锁冲突时整体重试次数
	LockWaitMs               int64 `toml:"lock_wait_ms" mapstructure:"lock_wait_ms" json:"lock_wait_ms"`                                              // 抢占拍卖锁的最长等待 (毫秒)
}

// Monitor 定义监控配置
type Monitor struct {
	PprofEnable bool  `toml:"pprof_enable" mapstructure:"pprof_enable" json:"pprof_enable"` // 是否开启 Pprof
	PprofPort   int64 `toml:"pprof_port" mapstructure:"pprof_port" json:"pprof_port"`       // Pprof 监听端口
}

// ProjectCfg 定义项目配置
type ProjectCfg struct {
	Name string `toml:"name" mapstructure:"name" json:"name"` // 项目名称, 用于缓存/队列 key 前缀
}

// KvConf 定义 Key-Value 存储配置
type KvConf struct {
	Redis []*Redis `toml:"redis" json:"redis"` // Redis 列表（可能支持多实例）
}

// Redis 定义 Redis 连接配置
type Redis struct {
	Host string `toml:"host" json:"host"` // Redis 主机地址
	Type string `toml:"type" json:"type"` // Redis 类型 (node, cluster)
	Pass string `toml:"pass" json:"pass"` // Redis 密码
}

// UnmarshalConfig 加载并解析指定路径的配置文件
// @params configFilePath: 配置文件路径
func UnmarshalConfig(configFilePath string) (*Config, error) {
	viper.SetConfigFile(configFilePath) // 设置配置文件路径
	viper.SetConfigType("toml")         // 设置配置文件类型为 TOML
	viper.AutomaticEnv()                // 自动读取环境变量
	viper.SetEnvPrefix("BIDSTORM")      // 设置环境变量前缀, 如 BIDSTORM_DB_HOST
	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer) // 替换 key 中的 . 为 _

	if err := viper.ReadInConfig(); err != nil { // 读取配置
		return nil, err
	}

	var c Config
	if err := viper.Unmarshal(&c); err != nil { // 解析到结构体
		return nil, err
	}

	return &c, nil
}

// UnmarshalCmdConfig 加载并解析默认配置文件
// 依赖调用方提前通过 viper.SetConfigFile 设置好路径 (见 cmd 包)
func UnmarshalCmdConfig() (*Config, error) {
	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return nil, err
	}

	return &c, nil
}
