package main

import (
	"fmt"
	"os"

	"landmarket/internal/config"
	"landmarket/internal/database"
	"landmarket/internal/editor"
	"landmarket/internal/listing"
	"landmarket/internal/logging"
	"landmarket/internal/region"
	"landmarket/internal/store"
	"landmarket/internal/termmap"
	"landmarket/internal/view"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.Debug)
	defer log.Sync()

	listings := store.NewListingStore(store.NewFileStorage(cfg.DataDir), log)
	log.Infow("listings loaded", "count", len(listings.All()))

	// District boundary layers; lookups degrade to "" if none load.
	regions := region.Load(cfg.RegionShapefiles, log)

	// Optional Oracle archive. Failure to connect never blocks the UI.
	var archive *database.Archive
	if cfg.ArchiveEnabled() {
		a, err := database.New(database.Config{
			Host:           cfg.DBHost,
			Port:           cfg.DBPort,
			Service:        cfg.DBService,
			Username:       cfg.DBUsername,
			Password:       cfg.DBPassword,
			WalletLocation: cfg.DBWallet,
		})
		if err != nil {
			log.Warnw("listing archive unavailable", "error", err)
		} else {
			archive = a
			defer archive.Close()
		}
	}

	ed := editor.New()
	ctrl := view.NewController(termmap.NewEngine(os.Stdout), listings, ed, func(loc listing.LatLng) string {
		return regions.DistrictAt(loc.Lat, loc.Lng)
	}, log)

	if archive != nil {
		// Mirror each accepted listing into the archive, best effort.
		listings.OnChange(func() {
			all := listings.All()
			if len(all) == 0 {
				return
			}
			if err := archive.SaveListing(all[len(all)-1]); err != nil {
				log.Warnw("failed to archive listing", "error", err)
			}
		})
	}

	u := &ui{
		cfg:      cfg,
		log:      log,
		listings: listings,
		regions:  regions,
		editor:   ed,
		ctrl:     ctrl,
	}
	if err := u.run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
