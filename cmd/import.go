/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dotcs/kmt2es/api"
	"github.com/dotcs/kmt2es/esdb"
	"github.com/dotcs/kmt2es/komoot"
	"github.com/dotcs/kmt2es/params"
)

var komootConfig = params.DefaultKomootConfig()
var esConfig = params.DefaultElasticsearchConfig()

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a user's Komoot tours into Elasticsearch",
	Long: `
Imports a Komoot user's tours and their GPS points into Elasticsearch.

The importer fetches the user's tour listing, and for every tour with a
recorded track it upserts one metadata document and bulk-loads one document
per coordinate. Points are enriched on the way in: the raw stream offsets
become absolute timestamps, and each point carries the distance (meters)
and speed (m/s) relative to its predecessor.

Both indices are named from the tour's start date, so a tour recorded in
July 2023 lands in komoot-tour-2023-07 and komoot-coordinates-2023-07.
Documents are addressed by tour id (metadata) and tour id plus sequence
position (points), which makes reruns overwrite instead of duplicate.

Flags:

  --user-id      Numeric Komoot user id. Required.
  --cookie       Session cookie of a logged-in komoot.de browser session.
                 Falls back to KMT2ES_COOKIE.
  --full-index   Walk the complete tour history (pages of 100) instead of
                 only the most recent 10 tours.
  --batch-size   Point documents per bulk request. (Default is 1000.)

Examples:

  kmt2es import --user-id 553339 --elasticsearch-host http://localhost:9200 --log info
  KMT2ES_COOKIE="$(cat cookie.txt)" kmt2es import --user-id 553339 --elasticsearch-host http://localhost:9200 --full-index

A note on failures:

One tour failing (an expired session on the coordinate fetch, a mapper
exception on a single document) does not abort the run. The failure is
logged with the tour id, the tour is skipped and the run exits zero.
Rerun with the same arguments once the cause is fixed; the failed tours
are imported then, everything else is overwritten in place.
`,
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)

		// Credentials fall back to the environment.
		if komootConfig.Cookie == "" {
			komootConfig.Cookie = viper.GetString("cookie")
		}
		if esConfig.HTTPAuth == "" {
			esConfig.HTTPAuth = viper.GetString("elasticsearch_http_auth")
		}
		if err := komootConfig.Validate(); err != nil {
			log.Fatalln(err)
		}
		if err := esConfig.Validate(); err != nil {
			log.Fatalln(err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store, err := esdb.NewClient(ctx, esConfig)
		if err != nil {
			log.Fatalln(err)
		}
		fetcher := komoot.NewClient(komootConfig)
		router := esdb.Router{
			Tour:        esdb.Template(esConfig.TourIndexTemplate),
			Coordinates: esdb.Template(esConfig.CoordinatesIndexTemplate),
		}
		slog.Info("Index formats",
			"tour", esConfig.TourIndexTemplate,
			"coordinates", esConfig.CoordinatesIndexTemplate)

		importer, err := api.NewImporter(fetcher, store, router)
		if err != nil {
			log.Fatalln(err)
		}
		defer importer.Close()

		// No listing, no work. This one is fatal.
		tours, err := fetcher.Tours(ctx)
		if err != nil {
			log.Fatalln("Failed to fetch tour listing:", err)
		}
		slog.Info("Indexing tours", "tours", len(tours), "fullIndex", komootConfig.FullIndex)

		totals := importer.ImportTours(ctx, tours)
		if totals.Failed > 0 {
			slog.Warn("Finished with failed tours", "failed", totals.Failed)
		}
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	// Here you will define your flags and configuration settings.

	importCmd.Flags().StringVar(&komootConfig.UserID, "user-id", "", "Komoot user id (required)")
	importCmd.Flags().StringVar(&komootConfig.Cookie, "cookie", "", "Komoot session cookie (or KMT2ES_COOKIE)")
	importCmd.Flags().BoolVar(&komootConfig.FullIndex, "full-index", false, "Walk the complete tour history instead of the most recent page")
	importCmd.Flags().StringVar(&esConfig.Host, "elasticsearch-host", "", "Elasticsearch URL (required)")
	importCmd.Flags().StringVar(&esConfig.HTTPAuth, "elasticsearch-http-auth", "", "Basic auth as user:password (or KMT2ES_ELASTICSEARCH_HTTP_AUTH)")
	importCmd.Flags().StringVar(&esConfig.TourIndexTemplate, "elasticsearch-index-format-tour", params.DefaultTourIndexTemplate, "Tour index name template")
	importCmd.Flags().StringVar(&esConfig.CoordinatesIndexTemplate, "elasticsearch-index-format-coordinates", params.DefaultCoordinatesIndexTemplate, "Coordinates index name template")
	importCmd.Flags().IntVar(&esConfig.BatchSize, "batch-size", params.DefaultBatchSize, "Point documents per bulk request")

	importCmd.MarkFlagRequired("user-id")
	importCmd.MarkFlagRequired("elasticsearch-host")
}
