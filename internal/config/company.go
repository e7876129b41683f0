package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// CompanyProfile is the issuer block printed on invoices.
type CompanyProfile struct {
	Name      string `mapstructure:"name" json:"name"`
	Address   string `mapstructure:"address" json:"address"`
	TaxNumber string `mapstructure:"taxNumber" json:"tax_number"`
	Email     string `mapstructure:"email" json:"email"`
	Phone     string `mapstructure:"phone" json:"phone"`
	Footer    string `mapstructure:"footer" json:"footer"`
}

func DefaultCompanyProfile() CompanyProfile {
	return CompanyProfile{
		Name:    "BizDesk",
		Address: "Riyadh, Saudi Arabia",
		Footer:  "Thank you for your business",
	}
}

type CompanyProfileHolder struct {
	current atomic.Value // holds CompanyProfile
}

// NewCompanyProfileHolder reads company.yml and keeps it fresh while the process runs.
func NewCompanyProfileHolder(log *zap.Logger) (*CompanyProfileHolder, error) {
	v := viper.New()

	v.SetConfigName("company")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/bizdesk/config")
	v.AddConfigPath("/etc/bizdesk")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BIZDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultCompanyProfile()
	v.SetDefault("company.name", defaults.Name)
	v.SetDefault("company.address", defaults.Address)
	v.SetDefault("company.footer", defaults.Footer)

	watch := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		watch = false
	}

	var cfg CompanyProfile
	if err := v.UnmarshalKey("company", &cfg); err != nil {
		return nil, err
	}
	if err := validateCompanyProfile(cfg); err != nil {
		return nil, err
	}

	holder := NewStaticCompanyProfile(cfg)
	if !watch {
		return holder, nil
	}

	log = log.Named("company.config")
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated CompanyProfile
		if err := v.UnmarshalKey("company", &updated); err != nil {
			log.Warn("reload failed", zap.Error(err))
			return
		}
		if err := validateCompanyProfile(updated); err != nil {
			log.Warn("invalid profile ignored", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

// NewStaticCompanyProfile returns a holder that never reloads.
func NewStaticCompanyProfile(profile CompanyProfile) *CompanyProfileHolder {
	holder := &CompanyProfileHolder{}
	holder.current.Store(profile)
	return holder
}

func (h *CompanyProfileHolder) Get() CompanyProfile {
	return h.current.Load().(CompanyProfile)
}

func validateCompanyProfile(cfg CompanyProfile) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return errors.New("company.name cannot be empty")
	}
	return nil
}
