package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"

	"apogee/internal/config"
	"apogee/internal/logging"
	"apogee/internal/store"
)

type commandContext struct {
	configFlag *string
	dbFlag     *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, dbFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		dbFlag:     dbFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) databasePath() (string, error) {
	if c.dbFlag != nil && strings.TrimSpace(*c.dbFlag) != "" {
		expanded, err := config.ExpandPath(strings.TrimSpace(*c.dbFlag))
		if err != nil {
			return "", fmt.Errorf("resolve database path: %w", err)
		}
		return expanded, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	return cfg.DatabasePath(), nil
}

// withStore opens the database for one command and closes it afterwards.
func (c *commandContext) withStore(fn func(*store.Store) error) error {
	path, err := c.databasePath()
	if err != nil {
		return err
	}
	st, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()
	return fn(st)
}

// withLockedStore serializes mutating commands across processes with a lock
// file beside the database. The lock is derived from the resolved database
// path so two processes pointing --db at the same file always contend on the
// same lock, whatever their configs say.
func (c *commandContext) withLockedStore(fn func(*store.Store) error) error {
	dbPath, err := c.databasePath()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure database directory: %w", err)
		}
	}
	lockPath := dbPath + ".lock"
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock %s: %w", lockPath, err)
	}
	if !ok {
		return fmt.Errorf("another apogee operation holds the lock at %s", lockPath)
	}
	defer func() {
		_ = lock.Unlock()
	}()
	return c.withStore(fn)
}
