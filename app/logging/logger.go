// Package logging builds the process-wide zap logger.
package logging

import "go.uber.org/zap"

// New builds a zap logger appropriate for appEnv: console/development
// config for "development" or an empty appEnv, JSON/production config
// otherwise.
func New(appEnv string) (*zap.Logger, error) {
	if appEnv == "development" || appEnv == "" {
		cfg := zap.NewDevelopmentConfig()
		return cfg.Build()
	}
	cfg := zap.NewProductionConfig()
	return cfg.Build()
}
