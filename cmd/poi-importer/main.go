// poi-importer seeds the POI registry from an OpenStreetMap extract.
// It scans the nodes of a .osm.pbf file, keeps those inside the given
// bounding box whose tags map onto a POI category, and upserts them into
// PostgreSQL under stable "osm-<id>" identifiers.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/qedus/osmpbf"
	"github.com/rs/zerolog"

	"github.com/Pragnesh-10/CampusExplorer/internal/config"
	"github.com/Pragnesh-10/CampusExplorer/internal/model"
	"github.com/Pragnesh-10/CampusExplorer/internal/postgres"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	var (
		file   = flag.String("file", "", "path to the .osm.pbf extract")
		minLat = flag.Float64("min-lat", -90, "bounding box: minimum latitude")
		maxLat = flag.Float64("max-lat", 90, "bounding box: maximum latitude")
		minLng = flag.Float64("min-lng", -180, "bounding box: minimum longitude")
		maxLng = flag.Float64("max-lng", 180, "bounding box: maximum longitude")
	)
	flag.Parse()

	if *file == "" {
		logger.Fatal().Msg("Usage: poi-importer -file <path-to-osm.pbf> [bounding box flags]")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	db, err := postgres.Init(cfg.DBUrl)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer postgres.Close(db)

	f, err := os.Open(*file)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open extract")
	}
	defer f.Close()

	decoder := osmpbf.NewDecoder(f)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)

	numProcs := runtime.GOMAXPROCS(-1)
	if err := decoder.Start(numProcs); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start decoder")
	}
	logger.Info().Int("procs", numProcs).Str("file", *file).Msg("Decoder started")

	startTime := time.Now()
	scanned := 0
	imported := 0

	for {
		object, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Fatal().Err(err).Msg("Error decoding extract")
		}

		node, ok := object.(*osmpbf.Node)
		if !ok {
			continue
		}
		scanned++

		if node.Lat < *minLat || node.Lat > *maxLat || node.Lon < *minLng || node.Lon > *maxLng {
			continue
		}

		category, ok := categorize(node.Tags)
		if !ok {
			continue
		}
		name := node.Tags["name"]
		if name == "" {
			continue
		}

		now := time.Now()
		row := &model.POIPG{
			ID:        fmt.Sprintf("osm-%d", node.ID),
			Name:      name,
			Category:  category,
			Lat:       node.Lat,
			Lng:       node.Lon,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if result := db.Save(row); result.Error != nil {
			logger.Error().Err(result.Error).Str("poi", row.ID).Msg("Failed to upsert POI")
			continue
		}
		imported++

		if imported%100 == 0 {
			logger.Info().Int("imported", imported).Msg("Import progress")
		}
	}

	logger.Info().
		Int("scanned", scanned).
		Int("imported", imported).
		Dur("took", time.Since(startTime)).
		Msg("Import complete")
}

// categorize maps OSM node tags onto a POI category. Nodes without a
// recognized tag are skipped.
func categorize(tags map[string]string) (model.POICategory, bool) {
	switch tags["amenity"] {
	case "library":
		return model.POICategoryLibrary, true
	case "restaurant", "cafe", "fast_food", "food_court", "canteen":
		return model.POICategoryDining, true
	case "university", "college", "school", "lecture_hall":
		return model.POICategoryAcademic, true
	case "hospital", "clinic", "doctors", "pharmacy":
		return model.POICategoryMedical, true
	case "parking":
		return model.POICategoryParking, true
	}

	switch tags["leisure"] {
	case "sports_centre", "pitch", "stadium", "swimming_pool", "track":
		return model.POICategorySports, true
	}

	switch tags["building"] {
	case "dormitory":
		return model.POICategoryDorm, true
	case "university", "college":
		return model.POICategoryAcademic, true
	}

	if tags["tourism"] == "attraction" || tags["historic"] != "" {
		return model.POICategoryLandmark, true
	}

	return "", false
}
