// Package config reads and writes the client configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/korin/graphics"
)

// GraphicsConfig holds the renderer settings.
type GraphicsConfig struct {
	ScreenWidth     uint32 `yaml:"screen_width"`
	ScreenHeight    uint32 `yaml:"screen_height"`
	VSync           bool   `yaml:"vsync"`
	TripleBuffering bool   `yaml:"triple_buffering"`
	ShadowDetail    string `yaml:"shadow_detail"`
	TextureSampler  string `yaml:"texture_sampler"`
	LimitFramerate  bool   `yaml:"limit_framerate"`
	FramerateLimit  uint32 `yaml:"framerate_limit"`
}

// AudioConfig holds the sound settings.
type AudioConfig struct {
	Muted        bool    `yaml:"muted"`
	EffectVolume float32 `yaml:"effect_volume"`
}

// LoginConfig holds the login server and remembered credentials.
type LoginConfig struct {
	ServerAddress    string `yaml:"server_address"`
	ServerPort       uint16 `yaml:"server_port"`
	Username         string `yaml:"username"`
	Password         string `yaml:"password"`
	RememberUsername bool   `yaml:"remember_username"`
	RememberPassword bool   `yaml:"remember_password"`
}

// Config is the full client configuration.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Audio    AudioConfig    `yaml:"audio"`
	Login    LoginConfig    `yaml:"login"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Graphics: GraphicsConfig{
			ScreenWidth:     1280,
			ScreenHeight:    720,
			VSync:           true,
			TripleBuffering: true,
			ShadowDetail:    "medium",
			TextureSampler:  "anisotropic4",
			FramerateLimit:  60,
		},
		Audio: AudioConfig{
			EffectVolume: 1,
		},
		Login: LoginConfig{
			ServerAddress: "127.0.0.1",
			ServerPort:    6900,
		},
	}
}

// Load reads the configuration at path. A missing file returns the
// defaults; a malformed file returns an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return config, nil
}

// Save writes the configuration to path.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// ParseShadowDetail maps a config string to a shadow detail level.
// Unknown values fall back to medium.
func ParseShadowDetail(value string) graphics.ShadowDetail {
	switch value {
	case "low":
		return graphics.ShadowDetailLow
	case "high":
		return graphics.ShadowDetailHigh
	case "ultra":
		return graphics.ShadowDetailUltra
	default:
		return graphics.ShadowDetailMedium
	}
}

// ParseTextureSampler maps a config string to a sampler type. Unknown
// values fall back to linear filtering.
func ParseTextureSampler(value string) graphics.TextureSamplerType {
	switch value {
	case "nearest":
		return graphics.TextureSamplerNearest
	case "anisotropic4":
		return graphics.TextureSamplerAnisotropic4
	case "anisotropic8":
		return graphics.TextureSamplerAnisotropic8
	case "anisotropic16":
		return graphics.TextureSamplerAnisotropic16
	default:
		return graphics.TextureSamplerLinear
	}
}

// EngineOptions converts the graphics section into engine options.
func (g GraphicsConfig) EngineOptions() graphics.EngineOptions {
	return graphics.EngineOptions{
		ScreenWidth:     g.ScreenWidth,
		ScreenHeight:    g.ScreenHeight,
		VSync:           g.VSync,
		TripleBuffering: g.TripleBuffering,
		ShadowDetail:    ParseShadowDetail(g.ShadowDetail),
		TextureSampler:  ParseTextureSampler(g.TextureSampler),
		LimitFramerate: graphics.LimitFramerate{
			Enabled: g.LimitFramerate,
			Rate:    g.FramerateLimit,
		},
	}
}

// LoginSettings extracts the remembered credentials, blanking fields
// the user chose not to remember.
func (l LoginConfig) LoginSettings() (username, password string) {
	if l.RememberUsername {
		username = l.Username
	}
	if l.RememberPassword {
		password = l.Password
	}
	return username, password
}
