// Package config resolves marusora settings from flags, MARUSORA_* environment
// variables, an optional .env file and built-in defaults, in that order.
package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "MARUSORA"

// Config holds the resolved settings for one run.
type Config struct {
	// Number is the requested deck size; negative studies every entry.
	Number int `mapstructure:"number"`

	// SavePath is where the session snapshot is kept.
	SavePath string `mapstructure:"save" validate:"required"`

	// Seed seeds the deck draw; 0 picks a random seed.
	Seed uint64 `mapstructure:"seed"`

	// Resume controls the resume prompt when a snapshot exists.
	Resume string `mapstructure:"resume" validate:"required,oneof=ask yes no"`

	// Delimiter separates prompt and response in text files. "tab" is
	// accepted for a tab character.
	Delimiter string `mapstructure:"delimiter" validate:"required,delimiter"`

	LogFile  string `mapstructure:"log_file"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// Files are the entry sources, taken from positional arguments.
	Files []string `mapstructure:"-"`
}

// flagKeys maps config keys to the flag names that set them.
var flagKeys = map[string]string{
	"number":    "number",
	"save":      "save",
	"seed":      "seed",
	"resume":    "resume",
	"delimiter": "delimiter",
	"log_file":  "log-file",
	"log_level": "log-level",
}

// Defaults used when nothing else sets a key.
const (
	DefaultNumber    = -1
	DefaultSavePath  = "marusora.save"
	DefaultResume    = "ask"
	DefaultDelimiter = ","
	DefaultLogLevel  = "info"
)

// Load resolves the configuration. flags may be nil; unknown flags in the
// set are ignored.
func Load(flags *pflag.FlagSet) (*Config, error) {
	// A missing .env file is the common case.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("number", DefaultNumber)
	v.SetDefault("save", DefaultSavePath)
	v.SetDefault("seed", 0)
	v.SetDefault("resume", DefaultResume)
	v.SetDefault("delimiter", DefaultDelimiter)
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", DefaultLogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Resume = strings.ToLower(cfg.Resume)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its field rules.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.RegisterValidation("delimiter", func(fl validator.FieldLevel) bool {
		_, err := parseDelimiter(fl.Field().String())
		return err == nil
	}); err != nil {
		return fmt.Errorf("register delimiter validation: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Field(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// DelimiterRune returns the configured delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	r, err := parseDelimiter(c.Delimiter)
	if err != nil {
		return ','
	}
	return r
}

func parseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "tab", `\t`:
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter %q must be a single character", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, fmt.Errorf("delimiter %q is not allowed", s)
	}
	return r, nil
}
