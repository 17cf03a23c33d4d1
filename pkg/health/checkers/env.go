package checkers

import (
	"context"
	"fmt"
	"os"
)

// EnvChecker fails while a required environment variable is unset.
// The value is read on every check so a rotated key is picked up without restart.
type EnvChecker struct {
	key string
}

func NewEnvChecker(key string) *EnvChecker {
	return &EnvChecker{key: key}
}

func (c *EnvChecker) Name() string { return "env:" + c.key }

func (c *EnvChecker) Check(_ context.Context) error {
	if os.Getenv(c.key) == "" {
		return fmt.Errorf("%s is not set", c.key)
	}
	return nil
}
