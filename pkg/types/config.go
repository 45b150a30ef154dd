package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// ScrapeConfig holds settings for the fetch stage.
type ScrapeConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// RequestDelay is the fixed pause between consecutive page requests (default 1s).
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay" mapstructure:"request_delay"`

	// MaxRetries is the number of retries on HTTP 429. Zero disables retrying.
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// UniverseSource names the wiki a universe is scraped from and the pages to fetch.
type UniverseSource struct {
	BaseURL string   `json:"base_url" yaml:"base_url" mapstructure:"base_url"`
	Pages   []string `json:"pages" yaml:"pages" mapstructure:"pages"`
}

// OutputConfig holds settings for persisting the question set.
type OutputConfig struct {
	// Path is the JSON file the question set is written to.
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// SplitLevels also writes questions_level{1..5}.json next to Path.
	SplitLevels bool `json:"split_levels" yaml:"split_levels" mapstructure:"split_levels"`
}

// ArchiveConfig holds settings for the SQLite question archive.
type ArchiveConfig struct {
	// Path is the SQLite database file.
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// ServeConfig holds settings for the preview API server.
type ServeConfig struct {
	Addr           string   `json:"addr" yaml:"addr" mapstructure:"addr"`
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// Config groups all stage configurations.
type Config struct {
	Scrape    ScrapeConfig              `json:"scrape" yaml:"scrape" mapstructure:"scrape"`
	Universes map[string]UniverseSource `json:"universes" yaml:"universes" mapstructure:"universes"`
	Output    OutputConfig              `json:"output" yaml:"output" mapstructure:"output"`
	Archive   ArchiveConfig             `json:"archive" yaml:"archive" mapstructure:"archive"`
	Serve     ServeConfig               `json:"serve" yaml:"serve" mapstructure:"serve"`
}

// Source returns the configured source for u, falling back to the defaults
// for any field left empty.
func (c Config) Source(u Universe) UniverseSource {
	def := DefaultSources[u]
	src, ok := c.Universes[u.Key()]
	if !ok {
		return def
	}
	if src.BaseURL == "" {
		src.BaseURL = def.BaseURL
	}
	if len(src.Pages) == 0 {
		src.Pages = def.Pages
	}
	return src
}

// DefaultSources are the fandom wikis and starter pages for each universe.
var DefaultSources = map[Universe]UniverseSource{
	UniverseDisney: {
		BaseURL: "https://disney.fandom.com/wiki/",
		Pages:   []string{"Mickey_Mouse", "Walt_Disney", "Disneyland"},
	},
	UniverseMarvel: {
		BaseURL: "https://marvel.fandom.com/wiki/",
		Pages:   []string{"Peter_Parker_(Earth-616)", "Anthony_Stark_(Earth-616)", "Steven_Rogers_(Earth-616)"},
	},
	UniverseStarWars: {
		BaseURL: "https://starwars.fandom.com/wiki/",
		Pages:   []string{"Luke_Skywalker", "Darth_Vader", "Millennium_Falcon"},
	},
}

const (
	DefaultUserAgent    = "TriviaQuestResearchBot/1.0 (Personal Educational Project)"
	DefaultTimeout      = 30 * time.Second
	DefaultRequestDelay = 1 * time.Second
	DefaultOutputPath   = "data/questions.json"
	DefaultArchivePath  = "data/archive/questions.db"
	DefaultServeAddr    = ":8080"
)
