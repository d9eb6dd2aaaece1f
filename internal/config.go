package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
)

type Config struct {
	Host     string `env:"HOST,default=0.0.0.0"`
	Port     int    `env:"PORT,default=8080"`
	LogLevel string `env:"LOG_LEVEL,default=INFO"`

	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath  string `env:"BLUGE_FILEPATH,required=true"`

	JWTSecret    string        `env:"JWT_SECRET,required=true"`
	JWTIssuer    string        `env:"JWT_ISSUER,default=group-chat"`
	TouchEvery   time.Duration `env:"USER_TOUCH_INTERVAL,default=1m"`
	RedisAddr    string        `env:"REDIS_ADDR"`
	RedisDB      int           `env:"REDIS_DB,default=0"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT,default=10s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT,default=15s"`

	CharReplacement string `env:"CHARACTER_REPLACEMENT,default=*"`
	CensoredWords   string `env:"CENSORED_WORDS"`
	CensoredDir     string `env:"CENSORED_DIR"`

	BufferSize      int           `env:"BUFFER_SIZE,default=1024"`
	SinkTimeout     time.Duration `env:"SINK_TIMEOUT,default=2s"`
	MetricInterval  time.Duration `env:"METRIC_INTERVAL,default=15s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`

	RateLimitPerMinute int           `env:"RATE_LIMIT_PER_MINUTE,default=120"`
	RateLimitBurst     int           `env:"RATE_LIMIT_BURST,default=20"`
	RateLimitIdleTTL   time.Duration `env:"RATE_LIMIT_IDLE_TTL,default=10m"`
}

func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Words splits CENSORED_WORDS on commas, dropping blanks.
func (c Config) Words() []string {
	return lo.Compact(lo.Map(strings.Split(c.CensoredWords, ","), func(w string, _ int) string {
		return strings.TrimSpace(w)
	}))
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
