package config

type Storage struct {
	Database Database `envPrefix:"DATABASE_"`
}

type Database struct {
	DSN string `env:"DSN" envDefault:"snakebnb.sqlite"`
}
