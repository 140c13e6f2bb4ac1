package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// 环境变量名
const (
	EnvAPIURL    = "DERMAMON_API_URL"
	EnvUserID    = "DERMAMON_USER_ID"
	EnvUserToken = "DERMAMON_USER_TOKEN"
	EnvAppName   = "DERMAMON_APP_NAME"
)

// 客户端默认值
const (
	DefaultAPIURL  = "http://localhost:5000/api"
	DefaultUserID  = "guest"
	DefaultAppName = "dermamon"
)

// ClientConfig 与远端服务通信的配置
//
// 来源优先级：命令行参数 > 进程环境变量 > .env 文件 > 默认值
type ClientConfig struct {
	APIURL    string // API 根地址，不带末尾斜杠
	UserID    string // 提交成绩时使用的用户ID，未登录为 "guest"
	UserToken string // Bearer token，可为空
	AppName   string // gdata 存储使用的应用名
}

// LoadClientConfig 从 .env 文件和环境变量加载客户端配置
//
// envFile 不存在不是错误；文件存在但格式错误时返回错误。
// godotenv 不会覆盖已经存在的进程环境变量。
func LoadClientConfig(envFile string) (*ClientConfig, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
			}
			log.Printf("[Config] No env file at %s, using process environment", envFile)
		} else {
			log.Printf("[Config] Loaded environment from %s", envFile)
		}
	}

	cfg := &ClientConfig{
		APIURL:    strings.TrimRight(getEnv(EnvAPIURL, DefaultAPIURL), "/"),
		UserID:    getEnv(EnvUserID, DefaultUserID),
		UserToken: os.Getenv(EnvUserToken),
		AppName:   getEnv(EnvAppName, DefaultAppName),
	}
	return cfg, nil
}

// IsLoggedIn 是否配置了用户身份
func (c *ClientConfig) IsLoggedIn() bool {
	return c.UserToken != "" && c.UserID != "" && c.UserID != DefaultUserID
}

// getEnv 读取环境变量，为空时返回默认值
func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
