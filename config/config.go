package config

import (
	"time"

	"go.uber.org/zap/zapcore"
)

type (
	Headers struct {
		// MaxSize limits the whole header section, including the request line and all
		// the line terminators. Requests with bigger header sections are rejected.
		MaxSize int `env:"MAX_SIZE" json:"max_size"`
	}

	NET struct {
		// ReadBufferSize is a size of buffer in bytes which will be used to read from
		// socket
		ReadBufferSize int `env:"READ_BUFFER_SIZE" json:"read_buffer_size"`
		// ReadTimeout limits how long a single read from the client may block. A client
		// that sends nothing within this period is disconnected.
		ReadTimeout time.Duration `env:"READ_TIMEOUT" json:"read_timeout"`
		// AcceptLoopInterruptPeriod controls how often will the Accept() call be interrupted
		// in order to check whether it's time to stop.
		AcceptLoopInterruptPeriod time.Duration `env:"ACCEPT_LOOP_INTERRUPT_PERIOD" json:"accept_loop_interrupt_period"`
		// MaxConns limits the number of simultaneously served connections. The rest wait
		// in the listen backlog. Zero disables the limit; 1 serves connections strictly
		// one after another.
		MaxConns int `env:"MAX_CONNS" json:"max_conns" test:"nullable"`
		// WriteBufferSize is the size of a buffer the response header section and small
		// bodies are rendered into before being written at once.
		WriteBufferSize int `env:"WRITE_BUFFER_SIZE" json:"write_buffer_size"`
	}

	Static struct {
		// Root is the directory files are served from.
		Root string `env:"ROOT" json:"root"`
		// Index is the file served for the "/" path.
		Index string `env:"INDEX" json:"index"`
	}

	Log struct {
		Level zapcore.Level `env:"LEVEL" json:"level" test:"nullable"`
		// Format is either "json" or "console".
		Format string `env:"FORMAT" json:"format"`
	}

	Trace struct {
		// Exporter selects where connection spans go. Empty disables tracing; "stdout"
		// pretty-prints them.
		Exporter string `env:"EXPORTER" json:"exporter" test:"nullable"`
	}
)

// Config holds settings used across various parts of the server, mainly restrictions,
// timeouts and pre-allocations.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	// Addr is the address the server listens at.
	Addr    string  `env:"ADDR" json:"addr"`
	Headers Headers `envPrefix:"HEADERS_" json:"headers"`
	NET     NET     `envPrefix:"NET_" json:"net"`
	Static  Static  `envPrefix:"STATIC_" json:"static"`
	Log     Log     `envPrefix:"LOG_" json:"log"`
	Trace   Trace   `envPrefix:"TRACE_" json:"trace"`
}

// Default returns default config.
func Default() *Config {
	return &Config{
		Addr: "127.0.0.1:9000",
		Headers: Headers{
			MaxSize: 16 * 1024,
		},
		NET: NET{
			ReadBufferSize:            4 * 1024,
			ReadTimeout:               90 * time.Second,
			AcceptLoopInterruptPeriod: 5 * time.Second,
			MaxConns:                  0,
			WriteBufferSize:           4 * 1024,
		},
		Static: Static{
			Root:  "www",
			Index: "index.html",
		},
		Log: Log{
			Level:  zapcore.InfoLevel,
			Format: "json",
		},
		Trace: Trace{
			Exporter: "",
		},
	}
}
