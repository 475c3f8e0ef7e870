// Dev-only loader: applies the schema and fills the store with a demo
// facility set so the API can be exercised locally.
package main

import (
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/facilityworks/industrial-dashboard/internal/config"
	"github.com/facilityworks/industrial-dashboard/internal/database"
)

var metricSet = []struct {
	name string
	unit string
	base float64
	span float64
}{
	{"power_kw", "kW", 40, 20},
	{"flow_l_min", "L/min", 120, 60},
	{"temperature_c", "°C", 55, 15},
	{"vibration_mm_s", "mm/s", 2, 3},
}

func main() {
	schemaPath := flag.String("schema", "scripts/schema.sql", "path to schema file")
	readings := flag.Int("readings", 200, "readings per asset/metric pair")
	flag.Parse()

	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	db, err := database.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	defer db.Close()

	schema, err := os.ReadFile(*schemaPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *schemaPath).Msg("read schema failed")
	}
	if _, err := db.Exec(string(schema)); err != nil {
		log.Fatal().Err(err).Msg("apply schema failed")
	}

	metricIDs := make([]int64, len(metricSet))
	for i, m := range metricSet {
		if err := db.Get(&metricIDs[i],
			`INSERT INTO metrics(name, unit) VALUES ($1, $2)
			 ON CONFLICT (name) DO UPDATE SET unit = EXCLUDED.unit
			 RETURNING id`, m.name, m.unit); err != nil {
			log.Fatal().Err(err).Str("metric", m.name).Msg("insert metric failed")
		}
	}

	facilities := []struct {
		name     string
		location string
		assets   []string
	}{
		{"North Plant", "Hamburg", []string{"Compressor A", "Compressor B", "Chiller 1"}},
		{"South Plant", "Lyon", []string{"Pump 1", "Pump 2"}},
	}

	for _, f := range facilities {
		var facilityID int64
		if err := db.Get(&facilityID,
			`INSERT INTO facilities(name, location) VALUES ($1, $2) RETURNING id`,
			f.name, f.location); err != nil {
			log.Fatal().Err(err).Str("facility", f.name).Msg("insert facility failed")
		}
		for _, assetName := range f.assets {
			var assetID int64
			if err := db.Get(&assetID,
				`INSERT INTO assets(facility_id, name, asset_type) VALUES ($1, $2, $3) RETURNING id`,
				facilityID, assetName, "machine"); err != nil {
				log.Fatal().Err(err).Str("asset", assetName).Msg("insert asset failed")
			}
			seedReadings(db, facilityID, assetID, metricIDs, *readings)
		}
		log.Info().Str("facility", f.name).Int64("id", facilityID).Msg("seeded")
	}
	log.Info().Msg("seeding done")
}

func seedReadings(db *sqlx.DB, facilityID, assetID int64, metricIDs []int64, n int) {
	start := time.Now().Add(-time.Duration(n) * time.Minute)
	for i := 0; i < n; i++ {
		ts := start.Add(time.Duration(i) * time.Minute)
		for j, m := range metricSet {
			value := m.base + rand.Float64()*m.span
			if _, err := db.Exec(
				`INSERT INTO sensor_readings(facility_id, asset_id, metric_id, ts, value)
				 VALUES ($1, $2, $3, $4, $5)`,
				facilityID, assetID, metricIDs[j], ts, value); err != nil {
				log.Fatal().Err(err).Msg("insert reading failed")
			}
		}
	}
}
