// Copyright (c) 2012 by Christoph Hack <christoph@tux21b.org>
// All rights reserved. Distributed under the Simplified BSD License.

// Command jetanserver runs the Jetan game coordinator behind the
// /api/v1/games HTTP surface.
package main

import (
	"flag"
	"log"

	"github.com/DDiggs91/Jetan/internal/game"
	"github.com/DDiggs91/Jetan/internal/httpapi"
	"github.com/DDiggs91/Jetan/internal/jetanlog"
)

var (
	listenAddr       = flag.String("http", ":8080", "listen on this http address")
	initialSec       = flag.Int("initial-sec", 600, "default per-side clock allotment in seconds for new games")
	idempotencyCache = flag.Int("idempotency-cache", 128, "per-game idempotency LRU capacity")
	dev              = flag.Bool("dev", false, "use a human-readable console logger instead of JSON")
)

func main() {
	flag.Parse()

	logger, cleanup, err := jetanlog.New(*dev)
	if err != nil {
		log.Fatalf("jetanlog.New: %v", err)
	}
	defer cleanup()

	coord := game.NewCoordinator(logger, *initialSec, *idempotencyCache)
	router := httpapi.NewRouter(coord, logger)

	logger.Infow("listening", "addr", *listenAddr)
	if err := router.Run(*listenAddr); err != nil {
		logger.Fatalw("router.Run", "error", err)
	}
}
