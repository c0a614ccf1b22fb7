// Package config locates and loads twempest.yaml, applies TWEMPEST_*
// environment overrides and keeps the last-rendered ID between runs.
package config

import (
	"crypto/sha1" // #nosec G505 -- file name fingerprint, not a security boundary
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/alnah/go-twempest/internal/fileutil"
	"github.com/alnah/go-twempest/internal/yamlutil"
)

// Config file discovery.
const (
	FileName    = "twempest.yaml"
	DefaultDir  = "~/.twempest"
	FallbackDir = "."
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound    = errors.New("config file not found")
	ErrConfigParse       = errors.New("failed to parse config")
	ErrMissingSection    = errors.New("missing config section")
	ErrMissingCredential = errors.New("missing authentication credential")
	ErrLastID            = errors.New("invalid last ID file")
)

// Config holds the credentials and option defaults from twempest.yaml.
type Config struct {
	Twitter  TwitterConfig  `yaml:"twitter"`
	Twempest TwempestConfig `yaml:"twempest"`

	Dir  string `yaml:"-"` // directory the file was found in
	Path string `yaml:"-"`
}

// TwitterConfig holds the OAuth 1.0a credentials of the account.
type TwitterConfig struct {
	ConsumerKey       string `yaml:"consumerKey" env:"TWEMPEST_CONSUMER_KEY"`
	ConsumerSecret    string `yaml:"consumerSecret" env:"TWEMPEST_CONSUMER_SECRET"`
	AccessToken       string `yaml:"accessToken" env:"TWEMPEST_ACCESS_TOKEN"`
	AccessTokenSecret string `yaml:"accessTokenSecret" env:"TWEMPEST_ACCESS_TOKEN_SECRET"`
}

// TwempestConfig holds option defaults. Command-line flags override them.
type TwempestConfig struct {
	Append     bool   `yaml:"append" env:"TWEMPEST_APPEND"`
	Count      int    `yaml:"count" env:"TWEMPEST_COUNT"`
	Dump       bool   `yaml:"dump" env:"TWEMPEST_DUMP"`
	ImagePath  string `yaml:"imagePath" env:"TWEMPEST_IMAGE_PATH"`
	ImageURL   string `yaml:"imageUrl" env:"TWEMPEST_IMAGE_URL"`
	RenderFile string `yaml:"renderFile" env:"TWEMPEST_RENDER_FILE"`
	RenderPath string `yaml:"renderPath" env:"TWEMPEST_RENDER_PATH"`
	Replies    bool   `yaml:"replies" env:"TWEMPEST_REPLIES"`
	Retweets   bool   `yaml:"retweets" env:"TWEMPEST_RETWEETS"`
	SinceID    int64  `yaml:"sinceId" env:"TWEMPEST_SINCE_ID"`
	Skip       string `yaml:"skip" env:"TWEMPEST_SKIP"`
}

// rawConfig tells a missing section apart from an empty one.
type rawConfig struct {
	Twitter  *TwitterConfig  `yaml:"twitter"`
	Twempest *TwempestConfig `yaml:"twempest"`
}

// Validate checks that every credential is present.
func (c *Config) Validate() error {
	creds := []struct {
		name  string
		value string
	}{
		{"consumerKey", c.Twitter.ConsumerKey},
		{"consumerSecret", c.Twitter.ConsumerSecret},
		{"accessToken", c.Twitter.AccessToken},
		{"accessTokenSecret", c.Twitter.AccessTokenSecret},
	}
	for _, cred := range creds {
		if strings.TrimSpace(cred.value) == "" {
			return fmt.Errorf("%w: twitter.%s in '%s'", ErrMissingCredential, cred.name, c.Path)
		}
	}
	return nil
}

// ChooseDir returns the first of cliDir, DefaultDir and FallbackDir that
// holds a readable FileName and is itself writable. The candidates are
// returned as absolute paths without duplicates, for error messages.
func ChooseDir(cliDir string) (string, []string, error) {
	var candidates []string
	seen := map[string]bool{}
	for _, d := range []string{cliDir, DefaultDir, FallbackDir} {
		if d == "" {
			continue
		}
		expanded, err := fileutil.ExpandHome(d)
		if err != nil {
			continue
		}
		abs, err := filepath.Abs(expanded)
		if err != nil || seen[abs] {
			continue
		}
		seen[abs] = true
		candidates = append(candidates, abs)
	}

	for _, dir := range candidates {
		if fileutil.IsReadableFile(filepath.Join(dir, FileName)) && fileutil.CheckWritableDir(dir) == nil {
			return dir, candidates, nil
		}
	}

	return "", candidates, fmt.Errorf("%w: no readable %s in writable directory path(s): '%s'",
		ErrConfigNotFound, FileName, strings.Join(candidates, "', '"))
}

// Load reads FileName from dir, then applies environment overrides.
// Both the twitter and twempest sections must be present.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)

	var raw rawConfig
	if err := yamlutil.ReadFile(path, &raw, true); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if raw.Twitter == nil {
		return nil, fmt.Errorf("%w: 'twitter' in '%s'", ErrMissingSection, path)
	}
	if raw.Twempest == nil {
		return nil, fmt.Errorf("%w: 'twempest' in '%s'", ErrMissingSection, path)
	}

	cfg := &Config{Twitter: *raw.Twitter, Twempest: *raw.Twempest, Dir: dir, Path: path}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("%w: environment: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LastIDFileName names the file holding the last rendered ID for an account.
// The consumer key is hashed so the name does not leak it.
func LastIDFileName(consumerKey string) string {
	sum := sha1.Sum([]byte(consumerKey)) // #nosec G401
	return "twempest-last-" + hex.EncodeToString(sum[:]) + ".id"
}

// ReadLastID returns the ID recorded by WriteLastID, or 0 if there is none.
func ReadLastID(dir, consumerKey string) (int64, error) {
	path := filepath.Join(dir, LastIDFileName(consumerKey))
	data, err := os.ReadFile(path) // #nosec G304 -- inside the config directory
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrLastID, err)
	}

	id, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%w: %s holds %q", ErrLastID, path, strings.TrimSpace(string(data)))
	}
	return id, nil
}

// WriteLastID records id for the next run.
func WriteLastID(dir, consumerKey string, id int64) error {
	path := filepath.Join(dir, LastIDFileName(consumerKey))
	if err := os.WriteFile(path, []byte(strconv.FormatInt(id, 10)), 0o600); err != nil {
		return fmt.Errorf("writing last ID file: %w", err)
	}
	return nil
}
