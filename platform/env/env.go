package env

import (
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// OrDefault returns the value of an env var, or a default value when the env var is empty
func OrDefault(log *zap.SugaredLogger, env, def string) string {
	v := os.Getenv(env)
	if v == "" {
		log.Infow("config", "env", env, "default", def)
		return def
	}
	return v
}

// Must returns the value of an env var, panicking when the env var is empty
func Must(log *zap.SugaredLogger, env string) string {
	v := os.Getenv(env)
	if v == "" {
		log.Panicf("missing required env var %s", env)
	}
	return v
}

// DurationDefault return the result of searching an env var, if the env var value is empty, return a default value as duration
func DurationDefault(log *zap.SugaredLogger, env, def string) time.Duration {
	orDefault := OrDefault(log, env, def)
	duration, err := time.ParseDuration(orDefault)
	if err != nil {
		log.Warn("error parsing ", orDefault, " as duration: ", err)
	}
	return duration
}

// BoolDefault return the result of searching an env var, if the env var value is empty, return a default value as bool
func BoolDefault(log *zap.SugaredLogger, env, def string) bool {
	orDefault := OrDefault(log, env, def)
	b, err := strconv.ParseBool(orDefault)
	if err != nil {
		log.Warn("error parsing ", orDefault, " as bool: ", err)
	}
	return b
}

// IntDefault return the result of searching an env var, if the env var value is empty, return a default value as int
func IntDefault(log *zap.SugaredLogger, env, def string) int {
	orDefault := OrDefault(log, env, def)
	i, err := strconv.Atoi(orDefault)
	if err != nil {
		log.Warn("error parsing ", orDefault, " as int: ", err)
	}
	return i
}
