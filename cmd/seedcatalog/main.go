// Command seedcatalog pushes the role catalog into Meilisearch for human
// QA browsing of the normalized-title space: "what does the catalog
// already have", typo-tolerant. It never touches the matching cascade
// itself (C4/C5 run their own in-process Aho-Corasick automaton and
// embedding index), so this tool can be re-run at any time without
// affecting a live matcher.
package main

import (
	"flag"

	"go.uber.org/zap"

	"github.com/roletitle/matcher/app/config"
	"github.com/roletitle/matcher/app/logging"
	"github.com/roletitle/matcher/app/models"
	"github.com/roletitle/matcher/internal/gazetteer"
	"github.com/roletitle/matcher/internal/search"
)

func main() {
	rebuildIndex := flag.Bool("rebuild-index", false, "reconfigure searchable/filterable attributes before seeding")
	flag.Parse()

	cfg, err := config.Load("config/rolematch.yaml")
	if err != nil {
		panic(err)
	}

	logger, err := logging.New(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	gz, err := gazetteer.NewStore(gazetteer.DefaultFS(), logger)
	if err != nil {
		logger.Fatal("failed to load gazetteer", zap.Error(err))
	}
	// Catalog normalization needs C3, which this admin tool doesn't build;
	// the raw title is searchable on its own for browsing purposes.
	gz.Finalize(func(title string) (string, []string, []string) {
		return title, nil, nil
	})

	searcher, err := search.NewCatalogSearcher(search.SearchConfig{
		Host:          cfg.Meili.Host,
		APIKey:        cfg.Meili.APIKey,
		IndexName:     cfg.Meili.Index,
		MaxCandidates: 50,
	}, logger)
	if err != nil {
		logger.Fatal("failed to connect to meilisearch", zap.Error(err))
	}

	if *rebuildIndex {
		if err := searcher.BuildIndex(); err != nil {
			logger.Fatal("failed to configure catalog index", zap.Error(err))
		}
	}

	roles := make([]models.CatalogRole, 0, len(gz.MainRoles)+len(gz.SimilarRoles))
	roles = append(roles, gz.MainRoles...)
	roles = append(roles, gz.SimilarRoles...)
	if err := searcher.SeedRoles(roles); err != nil {
		logger.Fatal("failed to seed catalog index", zap.Error(err))
	}

	logger.Info("catalog seeded", zap.Int("roles", len(roles)), zap.String("gazetteer_version", gz.Version()))
}
