package config

import "time"

type Lock struct {
	// TTLMs 锁过期时间
	TTLMs int `json:"ttl_ms" yaml:"ttl_ms"`
	// WaitMs 获取锁的最长等待时间
	WaitMs int `json:"wait_ms" yaml:"wait_ms"`
}

func (l *Lock) withDefaults() {
	if l.TTLMs == 0 {
		l.TTLMs = 5000
	}
	if l.WaitMs == 0 {
		l.WaitMs = 2000
	}
}

func (l *Lock) TTL() time.Duration {
	return time.Duration(l.TTLMs) * time.Millisecond
}

func (l *Lock) Wait() time.Duration {
	return time.Duration(l.WaitMs) * time.Millisecond
}
