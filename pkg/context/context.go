// Package context 组合进程级的配置、viper 实例和日志记录器
package context

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"github.com/yeisme/ptserve/pkg/configs"
	"github.com/yeisme/ptserve/pkg/utils/log"
)

// GlobalFlags 全局命令行标志
type GlobalFlags struct {
	ConfigPath    string
	Debug         bool
	Verbose       bool
	Quiet         bool
	CPUProfile    string
	Trace         string
	VersionEnable bool
}

// ServeContext 命令执行期间共享的上下文
type ServeContext struct {
	context.Context
	Config *configs.Config // 应用配置
	Viper  *viper.Viper    // 配置来源
	Logger log.Logger      // 日志记录器
}

// InitServeContext 加载配置并初始化日志记录器，命令行标志优先于配置文件
func InitServeContext(ctx context.Context, flags GlobalFlags) (*ServeContext, error) {
	v := viper.New()
	config, err := configs.LoadConfig(v, flags.ConfigPath)
	if err != nil {
		return nil, err
	}
	applyFlags(config, flags)

	logger := log.InitLogger(ctx, &config.Log, &config.App)

	return &ServeContext{
		Context: ctx,
		Config:  config,
		Viper:   v,
		Logger:  logger,
	}, nil
}

func applyFlags(config *configs.Config, flags GlobalFlags) {
	if flags.Debug {
		config.App.Debug = true
	}
	if flags.Verbose {
		config.App.Verbose = true
	}
	if flags.Quiet {
		config.App.Quiet = true
	}
}

// WatchConfig 监听配置文件变化并重新应用日志级别；没有使用配置文件时不做任何事
func (c *ServeContext) WatchConfig(flags GlobalFlags) bool {
	if c.Viper.ConfigFileUsed() == "" || !c.Config.App.Watch {
		return false
	}
	c.Viper.OnConfigChange(func(e fsnotify.Event) {
		if err := c.reload(flags); err != nil {
			c.Logger.Error().Err(err).Str("file", e.Name).Msg("配置重新加载失败")
			return
		}
		level := log.ApplyLevel(&c.Config.Log, &c.Config.App)
		c.Logger.Info().Str("file", e.Name).Str("op", e.Op.String()).
			Str("level", level.String()).Msg("配置已重新加载")
	})
	c.Viper.WatchConfig()
	return true
}

// reload 从 viper 重新解析配置；服务端口等设置仅在重启后生效
func (c *ServeContext) reload(flags GlobalFlags) error {
	var config configs.Config
	if err := c.Viper.Unmarshal(&config); err != nil {
		return fmt.Errorf("解析配置文件失败: %w", err)
	}
	applyFlags(&config, flags)
	c.Config.Log = config.Log
	c.Config.App = config.App
	return nil
}
