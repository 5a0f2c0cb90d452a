// Package engine is the composition root: it builds C1-C7 once and hands
// back a ready-to-use matcher facade. cmd/server and cmd/worker both start
// from here.
package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/roletitle/matcher/app/config"
	"github.com/roletitle/matcher/internal/ahocorasick"
	"github.com/roletitle/matcher/internal/artifact"
	"github.com/roletitle/matcher/internal/embedding"
	"github.com/roletitle/matcher/internal/gazetteer"
	"github.com/roletitle/matcher/internal/matcher"
	"github.com/roletitle/matcher/internal/normalize"
	"github.com/roletitle/matcher/internal/spelldict"
)

// Engine bundles the built facade with the gazetteer Store, which an admin
// caller (cmd/server's admin controller) still needs direct access to.
type Engine struct {
	Facade *matcher.MemoFacade
	Store  *gazetteer.Store
}

// Build wires C1 through C7 together per cfg. It is the only place in the
// repository that constructs the engine from scratch.
func Build(cfg config.Config, logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	gz, err := gazetteer.NewStore(gazetteer.DefaultFS(), logger)
	if err != nil {
		return nil, fmt.Errorf("engine: gazetteer: %w", err)
	}

	artifacts := artifact.New(cfg.ArtifactDir, gz.Version(), logger)

	wordSets, err := artifact.LoadOrBuild(artifacts, "dictionary", func() (spelldict.WordSets, error) {
		return spelldict.MineWordSets(spelldict.DefaultFS(), gz)
	})
	if err != nil {
		return nil, fmt.Errorf("engine: dictionary: %w", err)
	}
	dict := spelldict.NewDictionary(wordSets)

	normalizer := normalize.New(gz, dict, logger)
	memoNormalizer := normalize.NewMemo(normalizer, cfg.Memo.NormalizeCapacity)

	catalogSnapshot, err := artifact.LoadOrBuild(artifacts, "catalog", func() (gazetteer.CatalogSnapshot, error) {
		gz.Finalize(func(title string) (string, []string, []string) {
			return normalizer.Normalize(title, normalize.CatalogOptions())
		})
		return gz.Snapshot(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("engine: catalog: %w", err)
	}
	gz.ApplySnapshot(catalogSnapshot)

	distinctTitles := gz.DistinctNormalizedTitles()
	automaton := ahocorasick.Build(distinctTitles)

	vecs, err := embedding.LoadWordVectors(embedding.DefaultFS(), "word_vectors.tsv")
	if err != nil {
		return nil, fmt.Errorf("engine: embedding vectors: %w", err)
	}
	idf, err := embedding.LoadIDF(embedding.DefaultFS(), "word_idf.tsv")
	if err != nil {
		return nil, fmt.Errorf("engine: embedding idf: %w", err)
	}
	embedMatcher := embedding.Build(vecs, idf, distinctTitles, embedding.Config{
		MinLen:            cfg.W2V.WordCombinationsMin,
		MinSimilarity:     cfg.W2V.MinRoleSimilarity,
		StartingRoleWords: gz.StartingRoleWords,
	})

	facade := matcher.New(memoNormalizer, gz, automaton, embedMatcher, matcher.Config{
		AhoCorasickEnabled:  cfg.AhoCorasick.Enabled,
		W2VEnabled:          cfg.W2V.Enabled,
		MaxWords:            cfg.AhoCorasick.RoleTitleMaxWords,
		AhoMinLen:           cfg.AhoCorasick.MinLength,
		AhoMaxLen:           cfg.AhoCorasick.MaxLength,
		SingleWordBlocklist: gz.SingleWordBlocklist,
	})
	memoFacade := matcher.NewMemo(facade, cfg.Memo.MatchCapacity)

	return &Engine{Facade: memoFacade, Store: gz}, nil
}
