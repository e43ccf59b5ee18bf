package gpenc

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"github.com/stewi1014/gpenc/encio"
)

// Config defines configuration for a Codec.
// The zero value is a strict Codec with no frame size limit and no logging.
type Config struct {
	// Lenient selects the reference behaviour: decoding never fails on short or oversized input,
	// fixed-width encoding truncates, and framed payloads are taken from the end of the buffer.
	Lenient bool

	// MaxFrameLen is the largest framed payload accepted, in bytes. 0 means no limit.
	MaxFrameLen uint64

	// Logger receives an event whenever a lenient Codec tolerates malformed input.
	// If nil, nothing is logged.
	Logger *zerolog.Logger
}

func (c *Config) copyAndFill() *Config {
	config := new(Config)
	if c != nil {
		*config = *c
	}

	if config.Logger == nil {
		nop := zerolog.Nop()
		config.Logger = &nop
	}

	return config
}

type fileConfig struct {
	Lenient     bool   `toml:"lenient"`
	MaxFrameLen int64  `toml:"max_frame_len"`
	LogLevel    string `toml:"log_level"`
}

// LoadConfig reads a Config from the TOML file at path.
// Keys that are not present keep their zero value.
//
//	lenient = false
//	max_frame_len = 8388608
//	log_level = "debug"
//
// If log_level is set, the returned Config logs to encio.Warnings at that level.
func LoadConfig(path string) (*Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("load gpenc config: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, encio.NewError(encio.ErrBadConfig, fmt.Sprintf("unknown keys %v in %v", undecoded, path), "")
	}

	config := new(Config)

	if meta.IsDefined("lenient") {
		config.Lenient = raw.Lenient
	}

	if meta.IsDefined("max_frame_len") {
		if raw.MaxFrameLen < 0 {
			return nil, encio.NewError(encio.ErrBadConfig, fmt.Sprintf("negative max_frame_len %v", raw.MaxFrameLen), "")
		}
		config.MaxFrameLen = uint64(raw.MaxFrameLen)
	}

	if meta.IsDefined("log_level") {
		level, err := zerolog.ParseLevel(strings.TrimSpace(raw.LogLevel))
		if err != nil {
			return nil, encio.NewError(encio.ErrBadConfig, fmt.Sprintf("parse log_level: %v", err), "")
		}
		logger := encio.Warnings.Level(level)
		config.Logger = &logger
	}

	return config, nil
}
