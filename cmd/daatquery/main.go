// Command daatquery builds an in-memory corpus from a tab-separated
// docid/text file, runs a batch of queries against it under a chosen
// traversal strategy, and prints each query's top-k (score, docid)
// pairs. It is a demonstration harness for internal/memindex and
// pkg/daat, not a production index loader: index and wand-data files are
// treated as opaque memory-mapped binaries elsewhere in the system, out
// of scope here.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/kittclouds/daatkit/internal/memindex"
	"github.com/kittclouds/daatkit/internal/persist"
	"github.com/kittclouds/daatkit/internal/queryfile"
	"github.com/kittclouds/daatkit/internal/vocab"
	"github.com/kittclouds/daatkit/pkg/bm25"
	"github.com/kittclouds/daatkit/pkg/daat"
)

func main() {
	corpusPath := flag.String("corpus", "", "path to a docid<TAB>text file")
	queriesPath := flag.String("queries", "", "path to a query_id<TAB>term_id... file")
	thresholdsPath := flag.String("thresholds", "", "optional path to a per-query thresholds file")
	clustersPath := flag.String("cluster-selection", "", "optional path to a query_id : cluster_id... file")
	k := flag.Int("k", 10, "result size")
	strategy := flag.String("strategy", string(daat.StrategyWAND), "traversal strategy")
	maxClusters := flag.Int("max-clusters", 0, "cluster visit budget (0 = unlimited)")
	timeoutMicros := flag.Float64("timeout-micros", 0, "latency budget for *_boundsum_timeout strategies")
	riskFactor := flag.Float64("risk-factor", 1.0, "risk factor for *_boundsum_timeout strategies")
	clusterSize := flag.Int("cluster-size", 0, "partition the corpus into fixed-size clusters (0 = no clusters)")
	blockSize := flag.Int("block-size", 64, "wand-data block size in postings")
	persistPath := flag.String("persist-db", "", "optional sqlite cache: reused on repeat runs instead of re-tokenizing -corpus")
	flag.Parse()

	if *queriesPath == "" {
		log.Fatal("daatquery: -queries is required")
	}
	if *corpusPath == "" && *persistPath == "" {
		log.Fatal("daatquery: one of -corpus or -persist-db is required")
	}

	vocabulary := vocab.New()
	builder := memindex.NewBuilder()
	var corpusSize uint32
	var err error

	switch {
	case *persistPath != "" && persistedCorpusExists(*persistPath):
		corpusSize, err = loadPersistedCorpus(*persistPath, vocabulary, builder)
	case *corpusPath != "":
		var store *persist.CorpusStore
		if *persistPath != "" {
			store, err = persist.Open(nil, *persistPath)
			if err != nil {
				log.Fatalf("daatquery: %v", err)
			}
			defer store.Close()
		}
		corpusSize, err = ingestCorpus(*corpusPath, vocabulary, builder, store)
	default:
		err = fmt.Errorf("-persist-db %s does not exist and -corpus was not given", *persistPath)
	}
	if err != nil {
		log.Fatalf("daatquery: %v", err)
	}

	idx := builder.Build(corpusSize, bm25.DefaultConfig())

	var clusters *daat.ClusterMap
	if *clusterSize > 0 {
		clusters, err = partitionClusters(corpusSize, uint32(*clusterSize))
		if err != nil {
			log.Fatalf("daatquery: %v", err)
		}
	}

	qf, err := os.Open(*queriesPath)
	if err != nil {
		log.Fatalf("daatquery: %v", err)
	}
	defer qf.Close()
	queries, err := queryfile.ParseQueries(qf)
	if err != nil {
		log.Fatalf("daatquery: %v", err)
	}

	var thresholds []float32
	if *thresholdsPath != "" {
		tf, err := os.Open(*thresholdsPath)
		if err != nil {
			log.Fatalf("daatquery: %v", err)
		}
		defer tf.Close()
		thresholds, err = queryfile.ParseThresholds(tf, len(queries))
		if err != nil {
			log.Fatalf("daatquery: %v", err)
		}
	}

	var selections queryfile.ClusterSelection
	if *clustersPath != "" {
		cf, err := os.Open(*clustersPath)
		if err != nil {
			log.Fatalf("daatquery: %v", err)
		}
		defer cf.Close()
		selections, err = queryfile.ParseClusterSelections(cf)
		if err != nil {
			log.Fatalf("daatquery: %v", err)
		}
	}

	strat := daat.Strategy(*strategy)
	if !strat.Valid() {
		log.Fatalf("daatquery: %v: %q", daat.ErrUnknownStrategy, *strategy)
	}
	if strat.NeedsClusterMap() && clusters == nil {
		log.Fatalf("daatquery: %v: strategy %q needs -cluster-size > 0", daat.ErrMissingClusterMap, *strategy)
	}

	params := daat.Params{
		K:                   *k,
		Strategy:            strat,
		MaxClusters:         *maxClusters,
		TimeoutMicroseconds: *timeoutMicros,
		RiskFactor:          *riskFactor,
	}
	wandCfg := memindex.WandDataConfig{BlockSize: *blockSize}

	for i, q := range queries {
		topk := daat.NewTopK(params.K)
		if thresholds != nil {
			topk.SetThreshold(thresholds[i])
		}
		selection := selections.For(q.ID)

		if err := runQuery(idx, q, params, clusters, selection, wandCfg, topk); err != nil {
			log.Fatalf("daatquery: query %s: %v", q.ID, err)
		}

		fmt.Printf("%s", q.ID)
		for _, e := range topk.Finalize() {
			fmt.Printf("\t%d:%.6f", e.DocID, e.Score)
		}
		fmt.Println()
	}
}

// runQuery dispatches one parsed query through the strategy it was
// configured with, building exactly the cursor capability the strategy
// family needs.
func runQuery(idx *memindex.Index, q queryfile.Query, params daat.Params, clusters *daat.ClusterMap, selection []daat.ClusterID, wandCfg memindex.WandDataConfig, topk *daat.TopK) error {
	query := daat.NewQuery(q.ID, q.TermIDs)
	query.Terms = dropAbsentTerms(idx, query.Terms)
	variant := params.Strategy.Variant()

	switch params.Strategy {
	case daat.StrategyBlockMaxWAND, daat.StrategyBlockMaxWANDOrderedRange, daat.StrategyBlockMaxWANDBoundSum, daat.StrategyBlockMaxWANDBoundSumTimeout:
		cursors := make([]daat.BlockMaxScored, 0, len(query.Terms))
		for _, tw := range query.Terms {
			cursors = append(cursors, idx.NewBlockMaxScoredCursor(tw.Term, tw.QueryWeight, clusters, wandCfg))
		}
		return daat.Run(variant, cursors, daat.DocID(idx.CorpusSize()), clusters, selection, params, topk, daat.BlockMaxWAND[daat.BlockMaxScored])

	case daat.StrategyBlockMaxMaxScore:
		cursors := make([]daat.BlockMaxScored, 0, len(query.Terms))
		for _, tw := range query.Terms {
			cursors = append(cursors, idx.NewBlockMaxScoredCursor(tw.Term, tw.QueryWeight, clusters, wandCfg))
		}
		return daat.Run(variant, cursors, daat.DocID(idx.CorpusSize()), clusters, selection, params, topk, daat.MaxScore[daat.BlockMaxScored])

	case daat.StrategyMaxScore, daat.StrategyMaxScoreOrderedRange, daat.StrategyMaxScoreBoundSum, daat.StrategyMaxScoreBoundSumTimeout:
		cursors := make([]daat.MaxScored, 0, len(query.Terms))
		for _, tw := range query.Terms {
			cursors = append(cursors, idx.NewMaxScoredCursor(tw.Term, tw.QueryWeight, clusters, wandCfg))
		}
		return daat.Run(variant, cursors, daat.DocID(idx.CorpusSize()), clusters, selection, params, topk, daat.MaxScore[daat.MaxScored])

	case daat.StrategyWAND, daat.StrategyWANDOrderedRange, daat.StrategyWANDBoundSum, daat.StrategyWANDBoundSumTimeout:
		cursors := make([]daat.MaxScored, 0, len(query.Terms))
		for _, tw := range query.Terms {
			cursors = append(cursors, idx.NewMaxScoredCursor(tw.Term, tw.QueryWeight, clusters, wandCfg))
		}
		return daat.Run(variant, cursors, daat.DocID(idx.CorpusSize()), clusters, selection, params, topk, daat.WAND[daat.MaxScored])

	default:
		cursors := make([]daat.Scored, 0, len(query.Terms))
		for _, tw := range query.Terms {
			cursors = append(cursors, idx.NewScoredCursor(tw.Term, tw.QueryWeight))
		}
		runBaseline(params.Strategy, cursors, daat.DocID(idx.CorpusSize()), topk)
		return nil
	}
}

// dropAbsentTerms filters out query terms the corpus never saw, checked
// against the index's thresholded per-term DocSet rather than its
// posting slices. A term entirely absent from the corpus would otherwise
// waste a cursor on an empty IDF-zero posting list; every real traversal
// below tolerates fewer cursors than the query had terms.
func dropAbsentTerms(idx *memindex.Index, terms []daat.TermWeight) []daat.TermWeight {
	kept := terms[:0]
	for _, tw := range terms {
		if idx.HasTerm(tw.Term) {
			kept = append(kept, tw)
		}
	}
	return kept
}

func runBaseline(strategy daat.Strategy, cursors []daat.Scored, n daat.DocID, topk *daat.TopK) {
	switch strategy {
	case daat.StrategyAnd, daat.StrategyRankedAnd, daat.StrategyBlockMaxRankedAnd:
		daat.RankedAnd(cursors, n, topk)
	case daat.StrategyRankedOrTAAT:
		daat.RankedOrTAAT(cursors, n, topk)
	case daat.StrategyRankedOrTAATLazy:
		daat.RankedOrTAATLazy(cursors, n, topk)
	default:
		daat.RankedOr(cursors, n, topk)
	}
}

// ingestCorpus reads "docid<TAB>whitespace-separated text" lines,
// interning each token through vocabulary and accumulating it into
// builder. It returns the exclusive docID upper bound (the largest
// docid seen, plus one). When store is non-nil, every term, document,
// and posting is mirrored into it so a later run can skip re-tokenizing
// path entirely via loadPersistedCorpus.
func ingestCorpus(path string, vocabulary *vocab.Vocabulary, builder *memindex.Builder, store *persist.CorpusStore) (uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var maxDocID uint32
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		tab := strings.IndexByte(line, '\t')
		if tab < 0 {
			return 0, fmt.Errorf("corpus line %d: missing tab separator between docid and text", lineNo)
		}
		docID64, err := strconv.ParseUint(line[:tab], 10, 32)
		if err != nil {
			return 0, fmt.Errorf("corpus line %d: invalid docid %q: %w", lineNo, line[:tab], err)
		}
		docID := uint32(docID64)
		if docID+1 > maxDocID {
			maxDocID = docID + 1
		}

		text := line[tab+1:]
		tokens := strings.Fields(strings.ToLower(text))
		termFreqs := make(map[uint32]uint32, len(tokens))
		for _, tok := range tokens {
			termFreqs[vocabulary.Intern(tok)]++
		}
		builder.AddDocument(docID, uint32(len(tokens)), termFreqs)

		if store != nil {
			if err := store.SaveDocument(docID, uint32(len(tokens)), text); err != nil {
				return 0, fmt.Errorf("corpus line %d: persisting document: %w", lineNo, err)
			}
			for termID, freq := range termFreqs {
				term, _ := vocabulary.Term(termID)
				if err := store.SaveTerm(termID, term); err != nil {
					return 0, fmt.Errorf("corpus line %d: persisting term %q: %w", lineNo, term, err)
				}
				if err := store.SavePosting(termID, docID, freq); err != nil {
					return 0, fmt.Errorf("corpus line %d: persisting posting: %w", lineNo, err)
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	return maxDocID, nil
}

// persistedCorpusExists reports whether a sqlite cache already sits at
// path, so main can decide whether to load it or build it fresh.
func persistedCorpusExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// loadPersistedCorpus reconstructs vocabulary and builder from a prior
// ingestCorpus run's sqlite cache at path, skipping re-tokenization of
// the original corpus file entirely. It returns the exclusive docID
// upper bound, the same as ingestCorpus.
func loadPersistedCorpus(path string, vocabulary *vocab.Vocabulary, builder *memindex.Builder) (uint32, error) {
	store, err := persist.Open(nil, path)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	terms, err := store.LoadVocabulary()
	if err != nil {
		return 0, err
	}
	for id := uint32(0); id < uint32(len(terms)); id++ {
		vocabulary.Intern(terms[id])
	}

	docs, err := store.LoadDocuments()
	if err != nil {
		return 0, err
	}
	postings, err := store.LoadPostings()
	if err != nil {
		return 0, err
	}

	termFreqsByDoc := make(map[uint32]map[uint32]uint32, len(docs))
	for _, p := range postings {
		m, ok := termFreqsByDoc[p.DocID]
		if !ok {
			m = make(map[uint32]uint32)
			termFreqsByDoc[p.DocID] = m
		}
		m[p.TermID] = p.Freq
	}

	var maxDocID uint32
	for _, d := range docs {
		builder.AddDocument(d.DocID, d.Length, termFreqsByDoc[d.DocID])
		if d.DocID+1 > maxDocID {
			maxDocID = d.DocID + 1
		}
	}
	return maxDocID, nil
}

// partitionClusters splits [0, corpusSize) into clusters of clusterSize
// contiguous docids, the last one possibly shorter.
func partitionClusters(corpusSize uint32, clusterSize uint32) (*daat.ClusterMap, error) {
	var ranges []daat.Range
	for start := uint32(0); start < corpusSize; start += clusterSize {
		end := start + clusterSize
		if end > corpusSize {
			end = corpusSize
		}
		ranges = append(ranges, daat.Range{Start: start, End: end})
	}
	return daat.NewClusterMap(ranges, corpusSize)
}
