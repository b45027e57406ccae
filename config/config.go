package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 配置信息
type Config struct {
	App      *App            `json:"app" yaml:"app"`
	Redis    *Redis          `json:"redis" yaml:"redis"`
	MySQL    *MySQL          `json:"mysql" yaml:"mysql"`
	Jwt      *Jwt            `json:"jwt" yaml:"jwt"`
	Storage  *Storage        `json:"storage" yaml:"storage"`
	Oss      *OssConfig      `json:"oss" yaml:"oss"`
	Server   *Server         `json:"server" yaml:"server"`
	RocketMQ *RocketMQConfig `json:"rocketmq" yaml:"rocketmq"`
	Lock     *Lock           `json:"lock" yaml:"lock"`
}

type Server struct {
	Http int `json:"http" yaml:"http"`
}

// New 读取 yaml 配置, 缺失的文件按空配置处理, 再叠加 .env 与环境变量
func New(filename string) *Config {
	_ = godotenv.Load()

	var conf Config
	content, err := os.ReadFile(filename)
	if err != nil && !os.IsNotExist(err) {
		panic(err)
	}
	if err == nil {
		if err := yaml.Unmarshal(content, &conf); err != nil {
			panic(fmt.Sprintf("parse %s: %v", filename, err))
		}
	}

	conf.withDefaults()
	conf.withEnv()
	return &conf
}

func (c *Config) withDefaults() {
	if c.App == nil {
		c.App = &App{Env: "dev"}
	}
	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Http == 0 {
		c.Server.Http = 3000
	}
	if c.MySQL == nil {
		c.MySQL = &MySQL{}
	}
	if c.Redis == nil {
		c.Redis = &Redis{}
	}
	if c.Jwt == nil {
		c.Jwt = &Jwt{}
	}
	if c.Jwt.Expire == 0 {
		c.Jwt.Expire = 7 * 24 * 3600
	}
	if c.Storage == nil {
		c.Storage = &Storage{}
	}
	c.Storage.withDefaults()
	if c.Oss == nil {
		c.Oss = &OssConfig{}
	}
	if c.RocketMQ == nil {
		c.RocketMQ = &RocketMQConfig{}
	}
	c.RocketMQ.withDefaults()
	if c.Lock == nil {
		c.Lock = &Lock{}
	}
	c.Lock.withDefaults()
}

func (c *Config) withEnv() {
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		c.MySQL.DSN = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Http = port
		}
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Jwt.Secret = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Address = v
	}
	if v := os.Getenv("NODE_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.App.Node = id
		}
	}
}

// Debug 调试模式
func (c *Config) Debug() bool {
	return c.App.Debug
}
