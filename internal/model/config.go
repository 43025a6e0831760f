package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultFolderFormat is the row layout used when the config does not
// override it: sequence number, tag and new-mail markers, permissions,
// link count, owner, group, size, date and name.
const DefaultFolderFormat = "%2C %t %N %F %2l %-8.8u %-8.8g %8s %d %i"

// MailboxConfig declares one entry of the mailbox registry.
type MailboxConfig struct {
	// Path is the mailbox location: a filesystem path for
	// mbox/mmdf/mh/maildir stores, or an imap:// URL.
	Path string `mapstructure:"path" yaml:"path"`

	// Name is an optional display label.
	Name string `mapstructure:"name" yaml:"name"`

	// Type forces the store type ("mbox", "mmdf", "mh", "maildir",
	// "imap"); empty means probe the path.
	Type string `mapstructure:"type" yaml:"type"`
}

// AccountConfig holds the connection settings for one IMAP account.
// The password is fetched from the system keyring by account ID; the
// Password field is a plain-config fallback.
type AccountConfig struct {
	ID       string `mapstructure:"id" yaml:"id"`
	Host     string `mapstructure:"host" yaml:"host"`
	Port     string `mapstructure:"port" yaml:"port"`
	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"password"`
	TLS      bool   `mapstructure:"tls" yaml:"tls"`
}

// BrowserConfig holds the browsing preferences the engine consults.
type BrowserConfig struct {
	// Mask is the filename filter regular expression; entries are
	// kept iff they match.
	Mask string `mapstructure:"mask" yaml:"mask"`

	// SortKey and SortReverse select the default ordering.
	SortKey     string `mapstructure:"sort" yaml:"sort"`
	SortReverse bool   `mapstructure:"sort_reverse" yaml:"sort_reverse"`

	// FolderFormat is the row format string (see browser.FormatEntry).
	FolderFormat string `mapstructure:"folder_format" yaml:"folder_format"`

	// AbbreviateMailboxes shortens registry paths under Folder to
	// "=name" for display.
	AbbreviateMailboxes bool `mapstructure:"abbreviate_mailboxes" yaml:"abbreviate_mailboxes"`

	// ListSubscribedOnly restricts remote scans to subscribed folders.
	ListSubscribedOnly bool `mapstructure:"list_subscribed_only" yaml:"list_subscribed_only"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	// Folder is the configured home folder the goto operation jumps to.
	Folder string `mapstructure:"folder" yaml:"folder"`

	// SpoolFile is the incoming mailbox, used to seed the starting
	// location when no folder is configured.
	SpoolFile string `mapstructure:"spool_file" yaml:"spool_file"`

	Browser   BrowserConfig   `mapstructure:"browser" yaml:"browser"`
	Mailboxes []MailboxConfig `mapstructure:"mailboxes" yaml:"mailboxes"`
	Accounts  []AccountConfig `mapstructure:"accounts" yaml:"accounts"`
}

// DefaultConfigPath returns the default path for the configuration
// file, located at ~/.config/mail-browser/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "mail-browser", "config.yaml")
}

// DefaultDataDir returns the directory used for the history database
// and the log file.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "mail-browser")
}

func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Browser: BrowserConfig{
			Mask:         `^[^.]|^\.[^.]`,
			SortKey:      "alpha",
			FolderFormat: DefaultFolderFormat,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using
// Viper. A missing file yields the default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("browser.mask", `^[^.]|^\.[^.]`)
	v.SetDefault("browser.sort", "alpha")
	v.SetDefault("browser.folder_format", DefaultFolderFormat)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("folder", cfg.Folder)
	v.Set("spool_file", cfg.SpoolFile)
	v.Set("browser", cfg.Browser)
	v.Set("mailboxes", cfg.Mailboxes)
	v.Set("accounts", cfg.Accounts)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
