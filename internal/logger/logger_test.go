package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure_JSONOutsideDevelopment(t *testing.T) {
	var buf bytes.Buffer
	log := configure(logrus.New(), "warn", "", false, &buf)
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())

	log.WithField("component", "test").Info("hidden")
	log.WithField("component", "test").Warn("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "test", entry["component"])
}

func TestConfigure_TextInDevelopment(t *testing.T) {
	var buf bytes.Buffer
	log := configure(logrus.New(), "", "", true, &buf)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	_, ok := log.Formatter.(*logrus.TextFormatter)
	assert.True(t, ok)

	log = configure(logrus.New(), "", "json", true, &buf)
	_, ok = log.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok)
}

func TestConfigure_EnvAndInvalidLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	var buf bytes.Buffer
	log := configure(logrus.New(), "", "", false, &buf)
	assert.Equal(t, logrus.ErrorLevel, log.GetLevel())

	log = configure(logrus.New(), "loud", "", false, &buf)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.Contains(t, buf.String(), "invalid_level")
}
