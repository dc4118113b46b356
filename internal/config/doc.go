// Package config manages user-level settings stored at ~/.upy/config.yaml.
// Values can also be supplied through UPY_* environment variables, e.g.
// UPY_REGISTRY_URLS or UPY_DEVICE_VENDOR_ID. It covers the registry sources,
// the default board filter, the packager executable and the custom reference
// policy.
package config
