package config

import (
	"os"
	"strings"
)

// EnvSource reads config values from the environment, mapping "chisbot.some_key"
// to "CHISBOT_SOME_KEY".
type EnvSource struct{}

func (e *EnvSource) GetValue(key string) interface{} {
	properKey := strings.ToUpper(key)
	properKey = strings.Replace(properKey, ".", "_", -1)
	v := os.Getenv(properKey)
	if v == "" {
		return nil
	}
	return v
}

func (e *EnvSource) Name() string {
	return "env"
}
