// Package config handles configuration management for anek.
// Configuration is layered: embedded defaults, the user config file,
// the project config file inside .anek and finally ANEK_* environment
// variables, each layer overriding the previous one.
package config
