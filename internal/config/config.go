package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ftnpaper/curator/internal/theme"
)

// DirName is the name of both the global (~/.ftnpaper) and repo (.ftnpaper) config directories.
const DirName = ".ftnpaper"

// Config holds application configuration.
type Config struct {
	// OutputPath is where the curated edition is saved when no path is given.
	// Empty means the input file is overwritten.
	OutputPath string `json:"output_path,omitempty"`

	// DisableAutosave turns off the wholesale write after each recorded change.
	DisableAutosave bool `json:"disable_autosave,omitempty"`

	// RestoreOnCancel makes a cancelled overflow leave the story where it was.
	// When false, a cancelled move drops the story, which is the historical behaviour.
	RestoreOnCancel bool `json:"restore_on_cancel,omitempty"`

	// MaxMinis is the mini count above which validation warns.
	MaxMinis int `json:"max_minis"`

	// ComicDay is the day the comic pick step attaches to.
	ComicDay int `json:"comic_day"`

	// ComicsPath is a JSON file of candidate comics for the review workflow.
	ComicsPath string `json:"comics_path,omitempty"`

	// Themes overrides entries of the default theme table, matched by day.
	Themes []theme.Definition `json:"themes,omitempty"`

	// AllowedPaths is an allowlist of directories for loading and saving editions.
	// Paths outside ~/.ftnpaper/editions and the working directory require either
	// being in this list or AllowUnsafePaths=true. Relative entries are ignored.
	AllowedPaths []string `json:"allowed_paths,omitempty"`

	// AllowUnsafePaths disables directory restrictions (symlink and extension checks still apply).
	AllowUnsafePaths bool `json:"allow_unsafe_paths,omitempty"`

	// DisableHistory skips archiving sessions and changes in the history database.
	DisableHistory bool `json:"disable_history,omitempty"`

	// DBMaxOpenConns limits the maximum number of open history database connections.
	// 0 means use sql.DB default.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle history database connections.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`

	// LogLevel is a zap level name: debug, info, warn, error.
	LogLevel string `json:"log_level,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxMinis: 4,
		ComicDay: 4,
		LogLevel: "info",
	}
}

// ThemeTable returns the default theme table with configured overrides applied.
func (c *Config) ThemeTable() []theme.Definition {
	defs := theme.Defaults()
	for _, o := range c.Themes {
		for i := range defs {
			if defs[i].Day == o.Day && strings.TrimSpace(o.Name) != "" {
				defs[i].Name = o.Name
				if len(o.Keywords) > 0 {
					defs[i].Keywords = append([]string(nil), o.Keywords...)
				}
			}
		}
	}
	return defs
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.ftnpaper.
func Load(baseDir string) (*Config, error) {
	return loadFile(filepath.Join(baseDir, "config.json"))
}

// LoadWithRepo loads configuration from both global (~/.ftnpaper) and repo (.ftnpaper) directories.
// Repo config is found by walking upward from startDir to find the nearest .ftnpaper/config.json.
// Repo config takes precedence for scalar values; arrays are merged (deduplicated).
// Either or both configs may be missing.
func LoadWithRepo(globalDir, startDir string) (*Config, error) {
	global, err := loadFileRaw(filepath.Join(globalDir, "config.json"))
	if err != nil {
		return nil, err
	}

	repo, err := loadFileRaw(FindRepoConfig(startDir))
	if err != nil {
		return nil, err
	}

	// Apply defaults, then global, then repo
	return Merge(Merge(DefaultConfig(), global), repo), nil
}

// FindRepoConfig walks upward from startDir to find the nearest .ftnpaper/config.json.
// Returns the path if found, or empty string if not found.
func FindRepoConfig(startDir string) string {
	dir := startDir
	for {
		configPath := filepath.Join(dir, DirName, "config.json")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	if configPath == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
// Theme overrides are merged per day, overlay winning.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	// Scalars: overlay wins if non-zero, else base
	result.OutputPath = firstString(overlay.OutputPath, base.OutputPath)
	result.ComicsPath = firstString(overlay.ComicsPath, base.ComicsPath)
	result.LogLevel = firstString(overlay.LogLevel, base.LogLevel)
	result.MaxMinis = firstInt(overlay.MaxMinis, base.MaxMinis)
	result.ComicDay = firstInt(overlay.ComicDay, base.ComicDay)
	result.DBMaxOpenConns = firstInt(overlay.DBMaxOpenConns, base.DBMaxOpenConns)
	result.DBMaxIdleConns = firstInt(overlay.DBMaxIdleConns, base.DBMaxIdleConns)

	// Booleans: overlay wins if true, else base
	result.DisableAutosave = base.DisableAutosave || overlay.DisableAutosave
	result.RestoreOnCancel = base.RestoreOnCancel || overlay.RestoreOnCancel
	result.AllowUnsafePaths = base.AllowUnsafePaths || overlay.AllowUnsafePaths
	result.DisableHistory = base.DisableHistory || overlay.DisableHistory

	// Arrays: merge and deduplicate
	result.AllowedPaths = mergeStringSlice(base.AllowedPaths, overlay.AllowedPaths)
	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)
	result.Themes = mergeThemes(base.Themes, overlay.Themes)

	return result
}

func firstString(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}

func firstInt(a, b int) int {
	if a != 0 {
		return a
	}
	return b
}

// mergeThemes keys overrides by day; overlay replaces base for the same day.
func mergeThemes(base, overlay []theme.Definition) []theme.Definition {
	byDay := make(map[int]theme.Definition)
	for _, d := range base {
		byDay[d.Day] = d
	}
	for _, d := range overlay {
		byDay[d.Day] = d
	}
	if len(byDay) == 0 {
		return nil
	}
	result := make([]theme.Definition, 0, len(byDay))
	for _, d := range byDay {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Day < result[j].Day })
	return result
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range a {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	for _, s := range b {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
