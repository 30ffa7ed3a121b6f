package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// clearBallEnv blanks every variable Load reads so values left in the
// process environment (or loaded from a file by an earlier test) cannot
// leak between cases.
func clearBallEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"DEVICE_ID", "HUB_ADDR", "COMMAND_PORT",
		"MQTT_BROKER", "MQTT_CLIENT_ID_AGENT", "MQTT_CLIENT_ID_WEB", "MQTT_CLIENT_ID_DISPLAY",
		"TOPIC_TELEMETRY", "TOPIC_ALERT",
		"I2C_BUS", "ADS1115_ADDR", "MPU6050_ADDR", "AUDIO_SERIAL_PORT",
		"AUDIO_VOLUME", "AUDIO_TRACK", "TICK_INTERVAL",
		"WEB_SERVER_PORT", "DISPLAY_UPDATE_INTERVAL",
	}
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearBallEnv(t)
	t.Setenv("HUB_ADDR", "192.168.1.50:5005")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "ESP32-BALL", cfg.DeviceID)
	require.Equal(t, "192.168.1.50:5005", cfg.HubAddr)
	require.Equal(t, 5006, cfg.CommandPort)
	require.Equal(t, "ball/telemetry", cfg.TopicTelemetry)
	require.Equal(t, "ball/alert", cfg.TopicAlert)
	require.EqualValues(t, 0x48, cfg.ADS1115Addr)
	require.EqualValues(t, 0x68, cfg.MPU6050Addr)
	require.Equal(t, 30, cfg.AudioVolume)
	require.Equal(t, 1, cfg.AudioTrack)
	require.Equal(t, 20, cfg.TickInterval)
	require.Equal(t, 8080, cfg.WebServerPort)
	require.Equal(t, 500, cfg.DisplayUpdateInterval)
}

func TestLoadFromFile(t *testing.T) {
	clearBallEnv(t)

	path := filepath.Join(t.TempDir(), "ball_config.txt")
	content := "DEVICE_ID=BALL-7\n" +
		"HUB_ADDR=10.0.0.2:6000\n" +
		"AUDIO_VOLUME=18\n" +
		"ADS1115_ADDR=0x49\n" +
		"TICK_INTERVAL=10\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "BALL-7", cfg.DeviceID)
	require.Equal(t, "10.0.0.2:6000", cfg.HubAddr)
	require.Equal(t, 18, cfg.AudioVolume)
	require.EqualValues(t, 0x49, cfg.ADS1115Addr)
	require.Equal(t, 10, cfg.TickInterval)
}

func TestFileValuesOverrideEnvironment(t *testing.T) {
	clearBallEnv(t)
	t.Setenv("DEVICE_ID", "ENV-BALL")
	t.Setenv("HUB_ADDR", "env.host:1")

	path := filepath.Join(t.TempDir(), "ball_config.txt")
	content := "DEVICE_ID=FILE-BALL\n" +
		"HUB_ADDR=10.0.0.9:6000\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// The file is authoritative: inherited variables never shadow it.
	require.Equal(t, "FILE-BALL", cfg.DeviceID)
	require.Equal(t, "10.0.0.9:6000", cfg.HubAddr)
}

func TestLoadMissingFile(t *testing.T) {
	clearBallEnv(t)

	_, err := Load("/nonexistent/ball_config.txt")
	require.Error(t, err)
}

func TestValidation(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"missing hub addr", map[string]string{}},
		{"volume too high", map[string]string{"HUB_ADDR": "h:1", "AUDIO_VOLUME": "31"}},
		{"negative volume", map[string]string{"HUB_ADDR": "h:1", "AUDIO_VOLUME": "-1"}},
		{"zero track", map[string]string{"HUB_ADDR": "h:1", "AUDIO_TRACK": "0"}},
		{"bad tick interval", map[string]string{"HUB_ADDR": "h:1", "TICK_INTERVAL": "-5"}},
		{"bad command port", map[string]string{"HUB_ADDR": "h:1", "COMMAND_PORT": "70000"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearBallEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			require.Error(t, err)
		})
	}
}
