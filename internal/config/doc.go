// Package config provides startup configuration for the Lambda Link daemon:
// server address, vocabulary source, session and history storage drivers,
// job queue drivers, and logging behaviour.
package config
