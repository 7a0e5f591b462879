package config

import (
	"os"
	"path"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
	Env     Env
}

type Public struct {
	Pg               Pg            `yaml:"pg"`
	ServerPort       int           `yaml:"server_port"`
	LogLevel         string        `yaml:"log_level"`
	LogJSON          bool          `yaml:"log_json"`
	SessionTTL       time.Duration `yaml:"session_ttl"`
	FeedDefaultLimit int           `yaml:"feed_default_limit"` // posts returned when the client sends no limit
	InviteBatchSize  int           `yaml:"invite_batch_size"`  // N invites issued per batch
	AllowedOrigins   []string      `yaml:"allowed_origins"`
}

type Pg struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	User   string `yaml:"user"`
	Dbname string `yaml:"dbname"`
}

type Private struct {
	PgPassword string `yaml:"pg_password"`
	SessionKey string `yaml:"session_key"`
	// Shared secret the identity collaborator presents when exchanging a
	// verified identity for a session token.
	ProvisionKey string `yaml:"provision_key"`
}

// Env holds the deployment overlay loaded from environment variables.
// The block and moderator lists are comma-separated emails (may be empty).
type Env struct {
	BlockedEmails   []string `env:"BLOCKED_EMAILS" envSeparator:","`
	ModeratorEmails []string `env:"MODERATOR_EMAILS" envSeparator:","`
	Port            string   `env:"PORT"`
}

const (
	DefaultFeedLimit       = 100
	DefaultInviteBatchSize = 5
)

func (c *Config) SessionKey() string {
	return c.Private.SessionKey
}

func (c *Config) SessionTTL() time.Duration {
	return c.Public.SessionTTL
}

// AccessLists is the static allow/deny overlay consulted by role derivation.
type AccessLists struct {
	blocked    map[string]struct{}
	moderators map[string]struct{}
}

func NewAccessLists(blocked, moderators []string) AccessLists {
	return AccessLists{
		blocked:    toSet(blocked),
		moderators: toSet(moderators),
	}
}

func (a AccessLists) IsBlocked(email string) bool {
	_, ok := a.blocked[email]
	return ok
}

func (a AccessLists) IsModerator(email string) bool {
	_, ok := a.moderators[email]
	return ok
}

func toSet(emails []string) map[string]struct{} {
	set := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		set[e] = struct{}{}
	}
	return set
}

// AccessLists builds the overlay from the env config.
func (c *Config) AccessLists() AccessLists {
	return NewAccessLists(c.Env.BlockedEmails, c.Env.ModeratorEmails)
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	var envCfg Env
	if err := env.Parse(&envCfg); err != nil {
		panic("can't parse environment config: " + err.Error())
	}

	if public.FeedDefaultLimit <= 0 {
		public.FeedDefaultLimit = DefaultFeedLimit
	}
	if public.InviteBatchSize <= 0 {
		public.InviteBatchSize = DefaultInviteBatchSize
	}

	return &Config{Public: public, Private: private, Env: envCfg}
}
