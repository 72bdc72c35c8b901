package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/mitchellh/cli"
	"github.com/ryotarai/sepconfig/command"
	"github.com/ryotarai/sepconfig/config"
	"github.com/ryotarai/sepconfig/configure"
	"github.com/ryotarai/sepconfig/ec2"
	"github.com/ryotarai/sepconfig/orchestrator"
	"github.com/ryotarai/sepconfig/storage"
	"github.com/sirupsen/logrus"
)

// meta holds what every command needs: the UI, the loaded file and a logger.
type meta struct {
	ui         cli.Ui
	configPath string

	config *config.Config
	logger *logrus.Logger

	// resolver overrides the EC2 client in tests.
	resolver config.Resolver
	// storage overrides the configured storage in tests.
	storage storage.Storage
}

func (m *meta) flagSet(name string) *flag.FlagSet {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.StringVar(&m.configPath, "config", "", "path to the deployment file")
	flags.SetOutput(io.Discard)
	return flags
}

func (m *meta) load() error {
	if m.configPath == "" {
		return fmt.Errorf("-config is required")
	}

	c, err := config.LoadFromYAMLPath(m.configPath)
	if err != nil {
		return err
	}
	m.config = c

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	m.logger = logrus.New()
	m.logger.SetLevel(level)
	m.logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	return nil
}

func (m *meta) region() string {
	if m.config.Region != "" {
		return m.config.Region
	}
	return ec2.Region()
}

// engine resolves fleets and builds the compiled configuration.
func (m *meta) engine(ctx context.Context) (*configure.Engine, error) {
	target, err := m.config.Target()
	if err != nil {
		return nil, err
	}

	r := m.resolver
	if r == nil && m.config.NeedsResolver() {
		client, err := ec2.NewClient(m.region())
		if err != nil {
			return nil, err
		}
		client.Logger = m.logger
		r = client
	}

	defs, err := m.config.Definitions(ctx, r)
	if err != nil {
		return nil, err
	}

	return configure.New(configure.NewRegistry(), target, defs, m.config.Settings, configure.Options{
		Logger:    m.logger,
		Region:    m.region(),
		Partition: m.config.Partition,
	})
}

func (m *meta) openStorage() (storage.Storage, error) {
	if m.storage != nil {
		return m.storage, nil
	}
	if m.config.Storage.RedisURL == "" {
		m.logger.Warn("no RedisURL configured, apply records are kept in memory only")
		return storage.NewMemoryStorage(), nil
	}
	return storage.NewRedisStorage(m.config.Storage.RedisURL, m.config.Storage.RedisKeyPrefix)
}

func (m *meta) closeStorage(s storage.Storage) {
	c, ok := s.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		m.logger.Warnf("closing storage: %s", err)
	}
}

func (m *meta) orchestrator(s storage.Storage) *orchestrator.Orchestrator {
	o := orchestrator.New(&command.Executor{
		ApplyCommand:  m.config.Executor.ApplyCommand,
		RemoveCommand: m.config.Executor.RemoveCommand,
		Logger:        m.logger,
	}, s)
	o.Logger = m.logger
	return o
}

func (m *meta) fail(err error) int {
	m.ui.Error(err.Error())
	return 1
}
