// Copyright (c) 2012 by Christoph Hack <christoph@tux21b.org>
// All rights reserved. Distributed under the Simplified BSD License.

// Package jetanlog builds the structured logger shared by the coordinator
// and the HTTP layer. Kept as its own small package so neither internal/game
// nor internal/httpapi needs to know how the process-wide logger is wired.
package jetanlog

import "go.uber.org/zap"

// New builds a sugared zap logger. In production mode it uses zap's JSON
// encoder; set dev to true (e.g. behind a -dev flag) for the human-readable
// console encoder during local development.
func New(dev bool) (*zap.SugaredLogger, func(), error) {
	var logger *zap.Logger
	var err error
	if dev {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, func() {}, err
	}
	return logger.Sugar(), func() { _ = logger.Sync() }, nil
}
