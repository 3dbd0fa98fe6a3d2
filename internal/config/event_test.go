package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/akhilrajvs/SquidEventWssService/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validEventJSON = `{
  "eventName": "Squid Night",
  "adminEmails": ["Boss@Event.com"],
  "participantEmails": ["player@event.com"],
  "round1Forms": ["f1", "f2", "f3", "f4"],
  "round2Shapes": {
    "circle": "c", "triangle": "t", "star": "s", "umbrella": "u"
  },
  "bridgeLinks": {
    "safe": ["s1", "s2", "s3", "s4", "s5"],
    "risky": ["r1", "r2", "r3", "r4", "r5"]
  }
}`

func writeEventConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "eventConfig.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadEventConfig(t *testing.T) {
	cfg, err := LoadEventConfig(writeEventConfig(t, validEventJSON))
	require.NoError(t, err)

	assert.Equal(t, "Squid Night", cfg.EventName)
	assert.Len(t, cfg.Round1Forms, 4)

	link, ok := cfg.ShapeLink(model.ShapeStar)
	assert.True(t, ok)
	assert.Equal(t, "s", link)
}

func TestLoadEventConfigRejectsBadShapes(t *testing.T) {
	broken := `{
	  "round1Forms": ["f1", "f2", "f3", "f4"],
	  "round2Shapes": {"circle": "c"},
	  "bridgeLinks": {"safe": ["1","2","3","4","5"], "risky": ["1","2","3","4","5"]}
	}`
	_, err := LoadEventConfig(writeEventConfig(t, broken))
	assert.Error(t, err)
}

func TestLoadEventConfigRejectsShortBridge(t *testing.T) {
	broken := `{
	  "round1Forms": ["f1", "f2", "f3", "f4"],
	  "round2Shapes": {"circle": "c", "triangle": "t", "star": "s", "umbrella": "u"},
	  "bridgeLinks": {"safe": ["1"], "risky": ["1","2","3","4","5"]}
	}`
	_, err := LoadEventConfig(writeEventConfig(t, broken))
	assert.Error(t, err)
}

func TestLoadEventConfigMissingFile(t *testing.T) {
	_, err := LoadEventConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@b.com", NormalizeEmail("  A@B.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestAllowLists(t *testing.T) {
	cfg, err := LoadEventConfig(writeEventConfig(t, validEventJSON))
	require.NoError(t, err)

	assert.True(t, cfg.IsAdminEmail("boss@event.com"))
	assert.True(t, cfg.IsAllowedEmail("BOSS@EVENT.COM"))
	assert.False(t, cfg.IsAdminEmail("player@event.com"))
	assert.True(t, cfg.IsAllowedEmail("player@event.com"))
	assert.False(t, cfg.IsAllowedEmail("stranger@event.com"))
}

func TestBridgeLink(t *testing.T) {
	cfg, err := LoadEventConfig(writeEventConfig(t, validEventJSON))
	require.NoError(t, err)

	link, ok := cfg.BridgeLink(model.ChoiceSafe, 0)
	assert.True(t, ok)
	assert.Equal(t, "s1", link)

	link, ok = cfg.BridgeLink(model.ChoiceRisky, 4)
	assert.True(t, ok)
	assert.Equal(t, "r5", link)

	_, ok = cfg.BridgeLink(model.ChoiceSafe, 5)
	assert.False(t, ok)
	_, ok = cfg.BridgeLink(model.ChoiceSafe, -1)
	assert.False(t, ok)
}
