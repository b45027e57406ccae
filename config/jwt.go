package config

type Jwt struct {
	Secret string `json:"secret" yaml:"secret"`
	// Expire token 有效期(秒), 仅用于运维签发
	Expire int64 `json:"expire" yaml:"expire"`
}
