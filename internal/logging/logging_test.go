package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vullk4n/gestao-de-emails/internal/model"
)

func TestGoodNewLogger(t *testing.T) {
	for _, c := range []*model.LogConfig{
		&model.DefaultAppConfig().Log,
		{},
		{Format: "json", Level: "warn"},
		{Path: filepath.Join(t.TempDir(), "logfile.txt")},
	} {
		_, f, err := NewLogger(c)
		assert.NoError(t, err, "config %+v", c)
		if f != nil {
			f.Close()
		}
	}
}

func TestBadNewLogger(t *testing.T) {
	for _, c := range []*model.LogConfig{
		nil,
		{Path: "\x00"},
		{Level: "loud"},
		{Format: "xml"},
	} {
		_, f, err := NewLogger(c)
		assert.Error(t, err, "config %+v", c)
		if f != nil {
			f.Close()
		}
	}
}

func TestNewLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mailstore.log")
	logger, f, err := NewLogger(&model.LogConfig{Level: "debug", Format: "logfmt", Path: path})
	require.NoError(t, err)
	require.NotNil(t, f)
	defer f.Close()

	assert.Equal(t, log.DebugLevel, logger.GetLevel())
	logger.Debug("hello", "key", "value")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "key=value")
}
