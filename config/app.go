package config

type App struct {
	Env   string `json:"env" yaml:"env"`
	Debug bool   `json:"debug" yaml:"debug"`
	// Node 雪花 ID 节点号, 多实例部署需各不相同
	Node int64 `json:"node" yaml:"node"`
}
