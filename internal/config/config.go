package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

// Config holds all application configuration values.
type Config struct {
	// Device identity
	DeviceID string

	// Telemetry
	HubAddr     string // UDP host:port the hub listens on
	CommandPort int    // UDP port for inbound hub commands

	// MQTT mirror (optional; empty broker disables it)
	MQTTBroker           string
	MQTTClientIDAgent    string
	MQTTClientIDWeb      string
	MQTTClientIDDisplay  string
	TopicTelemetry       string
	TopicAlert           string

	// Hardware
	I2CBus          string
	ADS1115Addr     uint16
	MPU6050Addr     uint16
	AudioSerialPort string

	// Audio
	AudioVolume int
	AudioTrack  int

	// Timing
	TickInterval int // milliseconds

	// Web monitor
	WebServerPort int

	// Status display
	DisplayUpdateInterval int // milliseconds
}

// Package-level singleton, initialized once via InitGlobal and read via Get.
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Load reads the env-style configuration file into the process
// environment (file values take precedence over inherited variables),
// then builds a validated Config.
func Load(configPath string) (*Config, error) {
	if configPath != "" {
		if err := godotenv.Overload(configPath); err != nil {
			return nil, fmt.Errorf("failed to load config file %q: %w", configPath, err)
		}
	}

	cfg := &Config{
		DeviceID:    getEnv("DEVICE_ID", "ESP32-BALL"),
		HubAddr:     getEnv("HUB_ADDR", ""),
		CommandPort: getEnvInt("COMMAND_PORT", 5006),

		MQTTBroker:          getEnv("MQTT_BROKER", ""),
		MQTTClientIDAgent:   getEnv("MQTT_CLIENT_ID_AGENT", "ball-agent"),
		MQTTClientIDWeb:     getEnv("MQTT_CLIENT_ID_WEB", "ball-web"),
		MQTTClientIDDisplay: getEnv("MQTT_CLIENT_ID_DISPLAY", "ball-display"),
		TopicTelemetry:      getEnv("TOPIC_TELEMETRY", "ball/telemetry"),
		TopicAlert:          getEnv("TOPIC_ALERT", "ball/alert"),

		I2CBus:          getEnv("I2C_BUS", ""),
		ADS1115Addr:     getEnvAddr("ADS1115_ADDR", 0x48),
		MPU6050Addr:     getEnvAddr("MPU6050_ADDR", 0x68),
		AudioSerialPort: getEnv("AUDIO_SERIAL_PORT", ""),

		AudioVolume: getEnvInt("AUDIO_VOLUME", 30),
		AudioTrack:  getEnvInt("AUDIO_TRACK", 1),

		TickInterval: getEnvInt("TICK_INTERVAL", 20),

		WebServerPort: getEnvInt("WEB_SERVER_PORT", 8080),

		DisplayUpdateInterval: getEnvInt("DISPLAY_UPDATE_INTERVAL", 500),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that all required fields are set and in range.
func (c *Config) validate() error {
	if c.DeviceID == "" {
		return fmt.Errorf("DEVICE_ID is required")
	}
	if c.HubAddr == "" {
		return fmt.Errorf("HUB_ADDR is required")
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("TICK_INTERVAL must be positive, got %d", c.TickInterval)
	}
	if c.AudioVolume < 0 || c.AudioVolume > 30 {
		return fmt.Errorf("AUDIO_VOLUME must be 0-30, got %d", c.AudioVolume)
	}
	if c.AudioTrack < 1 {
		return fmt.Errorf("AUDIO_TRACK must be >= 1, got %d", c.AudioTrack)
	}
	if c.CommandPort <= 0 || c.CommandPort > 65535 {
		return fmt.Errorf("COMMAND_PORT must be a valid port, got %d", c.CommandPort)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvAddr parses an I2C address, accepting 0x-prefixed hex.
func getEnvAddr(key string, defaultValue uint16) uint16 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseUint(value, 0, 16); err == nil {
			return uint16(n)
		}
	}
	return defaultValue
}

// InitGlobal initializes the global configuration from file.
// Uses sync.Once so repeated calls are harmless.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance.
// InitGlobal must be called first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
