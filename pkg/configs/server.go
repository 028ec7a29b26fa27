package configs

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig 静态文件服务配置
type ServerConfig struct {
	Host string `mapstructure:"host"`                                      // 监听地址，0.0.0.0 表示所有网卡
	Port int    `mapstructure:"port" jsonschema:"minimum=0,maximum=65535"` // 监听端口，0 表示随机端口
	Root string `mapstructure:"root"`                                      // 提供文件的根目录

	// Serial 为 true 时一次只处理一个连接，处理完才接受下一个
	Serial bool `mapstructure:"serial"`

	// 超时设置，0 表示不限制
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	AccessLog bool `mapstructure:"access_log"` // 是否为每个请求记录访问日志
}

func setServerConfigDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.root", ".")
	v.SetDefault("server.serial", true)
	v.SetDefault("server.read_timeout", "0s")
	v.SetDefault("server.write_timeout", "0s")
	v.SetDefault("server.access_log", true)
}

// DefaultServerConfig 返回与默认配置一致的 ServerConfig
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:      "0.0.0.0",
		Port:      8000,
		Root:      ".",
		Serial:    true,
		AccessLog: true,
	}
}

// Address 返回 host:port 形式的监听地址
func (c ServerConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate 检查服务配置
func (c ServerConfig) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.ReadTimeout < 0 {
		return fmt.Errorf("negative read_timeout %s", c.ReadTimeout)
	}
	if c.WriteTimeout < 0 {
		return fmt.Errorf("negative write_timeout %s", c.WriteTimeout)
	}
	if c.Root == "" {
		return errors.New("root directory is empty")
	}
	info, err := os.Stat(c.Root)
	if err != nil {
		return fmt.Errorf("root directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root %s is not a directory", c.Root)
	}
	return nil
}
