package config

// Redis Redis配置信息, Address 为空时不连接 Redis
type Redis struct {
	Address  string `json:"address" yaml:"address"`
	Port     int    `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	Database int    `json:"database" yaml:"database"`
}

func (r *Redis) Enabled() bool {
	return r != nil && r.Address != ""
}

// Addr host:port, Address 本身带端口时原样返回
func (r *Redis) Addr() string {
	if r.Port == 0 {
		return r.Address
	}
	return r.Address + ":" + itoa(r.Port)
}
