package config

import (
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/anyproto/any-share/app"
	"github.com/anyproto/any-share/app/logger"
	"github.com/anyproto/any-share/metric"
	"github.com/anyproto/any-share/remoteshare/memremote"
	"github.com/anyproto/any-share/sharecoordinator"
)

const CName = "config"

var log = logger.NewNamed(CName)

func NewFromFile(path string) (c *Config, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (c *Config, err error) {
	c = &Config{}
	if err = yaml.Unmarshal(data, c); err != nil {
		return nil, err
	}
	return
}

type Config struct {
	Log              logger.Config           `yaml:"log"`
	Metric           metric.Config           `yaml:"metric"`
	ShareCoordinator sharecoordinator.Config `yaml:"shareCoordinator"`
	MemRemote        memremote.Config        `yaml:"memRemote"`
}

func (c *Config) Init(a *app.App) (err error) {
	log.Debug("config loaded",
		zap.String("metricAddr", c.Metric.Addr),
		zap.String("identity", c.MemRemote.Identity),
		zap.Int("invitationRefreshPeriod", c.ShareCoordinator.InvitationRefreshPeriodSec),
	)
	return
}

func (c *Config) Name() (name string) {
	return CName
}

func (c *Config) GetLog() logger.Config {
	return c.Log
}

func (c *Config) GetMetric() metric.Config {
	return c.Metric
}

func (c *Config) GetShareCoordinator() sharecoordinator.Config {
	return c.ShareCoordinator
}

func (c *Config) GetMemRemote() memremote.Config {
	return c.MemRemote
}
