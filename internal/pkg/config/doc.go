// Package config provides functionality for loading and managing application configuration.
//
// Settings are read with viper from defaults, an optional YAML file, an optional
// dotenv file and the process environment, then validated before use. The
// MongoDB connection string is taken from MONGO_URI.
package config
