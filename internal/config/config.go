package config

import (
	"log"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	App struct {
		LogLevel string `env:"LOG_LEVEL" envDefault:"INFO"`
	}
	Demo struct {
		// TraceDB is a bbolt file path; when set, demo runs persist their
		// execution trace there.
		TraceDB string `env:"TRACE_DB"`
	}
}

func Load() Config {
	var c Config
	if err := env.Parse(&c); err != nil {
		log.Panicf("[‼️  Config parsing failed] %+v\n", err)
	}
	return c
}
