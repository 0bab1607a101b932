// Package config provides user configuration management for quantumgw.
//
// This package manages a YAML-based configuration file that stores known
// gateways (host, nickname, last detected firmware family) and application
// preferences such as the watch-mode poll interval. The configuration
// follows OS-specific conventions for storage location.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/quantumgw/config.yaml or $HOME/.config/quantumgw/config.yaml
//   - macOS: $HOME/.config/quantumgw/config.yaml
//   - Windows: %LOCALAPPDATA%\quantumgw\config.yaml
//
// # Security
//
// IMPORTANT: This package NEVER stores gateway admin passwords. They are
// always prompted from the user or passed via flags when needed.
package config
