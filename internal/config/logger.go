package config

import "log/slog"

type Logger struct {
	Level int `env:"LEVEL" envDefault:"0"`
}

func (l Logger) SlogLevel() slog.Level {
	return slog.Level(l.Level)
}
