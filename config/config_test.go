package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/korin/graphics"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	loaded, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), loaded)
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("graphics: ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	saved := Default()
	saved.Graphics.VSync = false
	saved.Graphics.ShadowDetail = "ultra"
	saved.Login.Username = "alice"
	saved.Login.RememberUsername = true
	saved.Audio.Muted = true

	require.NoError(t, saved.Save(path))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("graphics:\n  vsync: false\n"), 0o644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.False(t, loaded.Graphics.VSync, "explicit key not applied")
	assert.Equal(t, uint32(1280), loaded.Graphics.ScreenWidth, "unset keys lost their defaults")
	assert.Equal(t, uint16(6900), loaded.Login.ServerPort, "unset keys lost their defaults")
}

func TestParseShadowDetail(t *testing.T) {
	cases := map[string]graphics.ShadowDetail{
		"low":    graphics.ShadowDetailLow,
		"medium": graphics.ShadowDetailMedium,
		"high":   graphics.ShadowDetailHigh,
		"ultra":  graphics.ShadowDetailUltra,
		"bogus":  graphics.ShadowDetailMedium,
		"":       graphics.ShadowDetailMedium,
	}
	for value, want := range cases {
		assert.Equal(t, want, ParseShadowDetail(value), "ParseShadowDetail(%q)", value)
	}
}

func TestEngineOptionsMapping(t *testing.T) {
	g := Default().Graphics
	g.LimitFramerate = true
	g.TextureSampler = "anisotropic16"

	options := g.EngineOptions()
	assert.Equal(t, uint32(1280), options.ScreenWidth)
	assert.Equal(t, uint32(720), options.ScreenHeight)
	assert.True(t, options.LimitFramerate.Enabled)
	assert.Equal(t, uint32(60), options.LimitFramerate.Rate)
	assert.Equal(t, graphics.TextureSamplerAnisotropic16, options.TextureSampler)
	assert.Equal(t, graphics.ShadowDetailMedium, options.ShadowDetail)
}

func TestLoginSettingsRespectRememberFlags(t *testing.T) {
	login := LoginConfig{
		Username:         "alice",
		Password:         "secret",
		RememberUsername: true,
	}

	username, password := login.LoginSettings()
	assert.Equal(t, "alice", username)
	assert.Empty(t, password, "password must stay blank when not remembered")
}
