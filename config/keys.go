package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ConfigKeyInfo 存储配置键的相关信息
type ConfigKeyInfo struct {
	Description string   // 配置项描述
	Options     []string // 可选值，如果为空则表示没有限制
	Type        string   // 配置项类型，默认为 "string"，可以是 "int"
}

// 配置键常量定义
const (
	KeyLang         = "lang"
	KeyLogLevel     = "log_level"
	KeyExportFormat = "export_format"
	KeyMaxFileSize  = "max_file_size"
	KeyWorkers      = "workers"
)

// ConfigKeys 存储所有配置键及其信息
var ConfigKeys = map[string]ConfigKeyInfo{
	KeyLang: {
		Description: "Set language",
		Options:     []string{"en", "zh-CN"},
		Type:        "string",
	},
	KeyLogLevel: {
		Description: "Set log level",
		Options:     []string{"debug", "info", "warn", "error"},
		Type:        "string",
	},
	KeyExportFormat: {
		Description: "Set default export format",
		Options:     []string{"zip", "md", "xml", "yaml", "pdf"},
		Type:        "string",
	},
	KeyMaxFileSize: {
		Description: "Skip files larger than this many bytes on import",
		Type:        "int",
	},
	KeyWorkers: {
		Description: "Number of concurrent file readers on import",
		Type:        "int",
	},
}

// GetConfigDescription 获取配置键的描述
func GetConfigDescription(key string) string {
	if info, exists := ConfigKeys[key]; exists {
		return info.Description
	}
	return ""
}

// ValidateValue 校验配置值是否符合键的约束，未知键返回错误
func ValidateValue(key, value string) error {
	info, exists := ConfigKeys[strings.ToLower(key)]
	if !exists {
		return fmt.Errorf("unknown config key: %s", key)
	}
	if info.Type == "int" {
		if n, err := strconv.Atoi(value); err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer", key)
		}
	}
	if len(info.Options) == 0 {
		return nil
	}
	for _, opt := range info.Options {
		if opt == value {
			return nil
		}
	}
	return fmt.Errorf("invalid value %q for %s, options: %s", value, key, strings.Join(info.Options, ", "))
}
