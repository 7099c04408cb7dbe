package config

import (
	"errors"
	"os"
	"path/filepath"
)

const (
	defaultConfigRelPath = "configs/conf.yml"
	// EnvConfigPath 显式指定配置文件，优先级低于 Load 的入参。
	EnvConfigPath = "PR_CONFIG"
)

var ErrConfigNotFound = errors.New("config file not found")

// Resolve 决定实际使用的配置文件：
// 1) cfgName 非空（相对路径以工作目录为基准）；
// 2) 环境变量 PR_CONFIG；
// 3) 从工作目录向上查找 configs/conf.yml。
func Resolve(cfgName string) (string, error) {
	curDir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if cfgName == "" {
		cfgName = os.Getenv(EnvConfigPath)
	}
	if cfgName != "" {
		if !filepath.IsAbs(cfgName) {
			cfgName = filepath.Join(curDir, cfgName)
		}
		if !fileExist(cfgName) {
			return "", ErrConfigNotFound
		}
		return cfgName, nil
	}
	return findConfigUpward(curDir)
}

func findConfigUpward(startDir string) (string, error) {
	dir := startDir
	for {
		candidate := filepath.Join(dir, defaultConfigRelPath)
		if fileExist(candidate) {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrConfigNotFound
		}
		dir = parent
	}
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}

// LogConfig 是 conf.yml 的 log 段，logs.Init 使用。
type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}
