// Package config loads and validates the service configuration.
//
// Configuration comes from a TOML (or YAML/JSON) file via viper, with
// ROWSD_* environment variables overriding individual keys, e.g.
// ROWSD_AUTH_TOKEN or ROWSD_HTTP_PORT. The file is read once at
// startup; the only required setting is auth.token.
package config
