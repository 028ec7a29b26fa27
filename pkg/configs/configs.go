// Package configs 提供应用程序配置管理功能
package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，例如 PTSERVE_SERVER_PORT
const EnvPrefix = "PTSERVE"

// Config 应用配置结构
type Config struct {
	Version string       `mapstructure:"version"`
	Log     LogConfig    `mapstructure:"log"`
	App     AppConfig    `mapstructure:"app"`
	Server  ServerConfig `mapstructure:"server"`
}

// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	v.SetDefault("version", "1.0")
	setLogConfigDefaults(v)
	setAppConfigDefaults(v)
	setServerConfigDefaults(v)
}

// configSearchPaths 返回配置文件搜索路径
func configSearchPaths() []string {
	searchPaths := []string{
		".",
		"./configs",
		"$HOME",
		"$HOME/.config",
		"$HOME/.config/ptserve",
	}

	// Windows 特殊路径
	if runtime.GOOS == "windows" {
		searchPaths = append(searchPaths,
			"$USERPROFILE",
			"$APPDATA/ptserve",
		)
	} else {
		searchPaths = append(searchPaths, "/etc/ptserve")
	}
	return searchPaths
}

// findConfigFile 尝试查找不同格式的配置文件，找不到时返回空字符串
func findConfigFile(searchPaths []string) string {
	// 配置文件名和扩展名的组合
	configNames := []string{".ptserve", "ptserve"}
	extensions := []string{"yaml", "yml", "json", "toml"}

	for _, path := range searchPaths {
		for _, name := range configNames {
			for _, ext := range extensions {
				configFile := filepath.Join(path, name+"."+ext)

				// 展开环境变量
				if strings.Contains(configFile, "$") {
					configFile = os.ExpandEnv(configFile)
				}

				if info, err := os.Stat(configFile); err == nil && !info.IsDir() {
					return configFile
				}
			}
		}
	}

	return ""
}

// LoadConfig 加载配置文件到 v，configPath 为空时按搜索路径查找
func LoadConfig(v *viper.Viper, configPath string) (*Config, error) {
	if configPath == "" {
		configPath = findConfigFile(configSearchPaths())
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
	}

	// 设置环境变量前缀，server.port -> PTSERVE_SERVER_PORT
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// 读取配置文件；没有配置文件时使用默认值
	if configPath != "" {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("读取配置文件失败: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 确保日志目录存在
	if config.Log.Mode == "file" || config.Log.Mode == "both" {
		logDir := filepath.Dir(config.Log.FilePath)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, fmt.Errorf("创建日志目录失败: %w", err)
		}
	}

	return &config, nil
}

// Validate 检查配置是否可用
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
