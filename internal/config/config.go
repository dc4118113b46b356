package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/upy-labs/upy/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Configuration keys.
const (
	KeyRegistryURLs       = "registry.urls"
	KeyRegistryTimeout    = "registry.timeout"
	KeyDeviceVendorID     = "device.vendor_id"
	KeyDeviceProductID    = "device.product_id"
	KeyPackagerCommand    = "packager.command"
	KeyReferencePrefixes  = "reference.prefixes"
	KeyReferenceSuffixes  = "reference.suffixes"
	KeyReferenceAnyScheme = "reference.any_scheme"
)

// DefaultRegistryURLs are the package indexes consulted when registry.urls is unset.
// Order matters: on duplicate package names the earlier source wins.
var DefaultRegistryURLs = []string{
	"https://raw.githubusercontent.com/arduino/package-index-py/file-override/package-list.yaml",
	"https://raw.githubusercontent.com/arduino/package-index-py/micropython-lib/micropython-lib.yaml",
}

// ArduinoVendorID is the USB vendor ID boards are filtered by unless configured otherwise.
const ArduinoVendorID = "0x2341"

// Dir returns the path to the config directory (~/.upy/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.upy/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	setDefaults()
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

func setDefaults() {
	viper.SetDefault(KeyRegistryURLs, DefaultRegistryURLs)
	viper.SetDefault(KeyRegistryTimeout, "30s")
	viper.SetDefault(KeyDeviceVendorID, ArduinoVendorID)
	viper.SetDefault(KeyDeviceProductID, "")
	viper.SetDefault(KeyPackagerCommand, "mpremote")
	viper.SetDefault(KeyReferencePrefixes, []string{"github:", "gitlab:", "http://", "https://", "file://"})
	viper.SetDefault(KeyReferenceSuffixes, []string{".py", ".mpy", ".json"})
	viper.SetDefault(KeyReferenceAnyScheme, true)
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	switch viper.Get(key).(type) {
	case []string, []any:
		return strings.Join(viper.GetStringSlice(key), ",")
	}
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// RegistryURLs returns the ordered registry sources.
func RegistryURLs() []string {
	return List(KeyRegistryURLs)
}

// RegistryTimeout returns the per-request timeout for registry fetches.
// Unparsable values fall back to 30 seconds.
func RegistryTimeout() time.Duration {
	d, err := time.ParseDuration(viper.GetString(KeyRegistryTimeout))
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// DeviceVendorID returns the configured vendor filter as written by the user.
func DeviceVendorID() string { return strings.TrimSpace(viper.GetString(KeyDeviceVendorID)) }

// DeviceProductID returns the configured product filter as written by the user.
func DeviceProductID() string { return strings.TrimSpace(viper.GetString(KeyDeviceProductID)) }

// PackagerCommand returns the executable used to talk to boards.
func PackagerCommand() string { return viper.GetString(KeyPackagerCommand) }

// ReferenceAnyScheme reports whether any scheme-like prefix marks a direct reference.
func ReferenceAnyScheme() bool { return viper.GetBool(KeyReferenceAnyScheme) }

// List returns a list-valued key. Values written with `config set` arrive as a
// single comma-separated string and are split here.
func List(key string) []string {
	var out []string
	for _, item := range viper.GetStringSlice(key) {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
