package sharecoordinator

import "time"

const defaultShareTitle = "Shared Project"

type Config struct {
	// ShareTitle is the display title given to every created share
	ShareTitle string `yaml:"shareTitle"`
	// InvitationRefreshPeriodSec enables background invitation refresh when positive
	InvitationRefreshPeriodSec  int `yaml:"invitationRefreshPeriod"`
	InvitationRefreshTimeoutSec int `yaml:"invitationRefreshTimeout"`
}

type configGetter interface {
	GetShareCoordinator() Config
}

func (c Config) shareTitle() string {
	if c.ShareTitle == "" {
		return defaultShareTitle
	}
	return c.ShareTitle
}

func (c Config) refreshTimeout() time.Duration {
	return time.Duration(c.InvitationRefreshTimeoutSec) * time.Second
}
