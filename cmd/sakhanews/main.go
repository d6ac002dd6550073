package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ayakovleva/sakhanews"
	"github.com/ayakovleva/sakhanews/config"
	"github.com/ayakovleva/sakhanews/storage"
)

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	configPath := flag.String("config", getEnv("SAKHANEWS_CONFIG", "scraper_config.json"), "Path to crawl configuration (SAKHANEWS_CONFIG)")
	appConfigPath := flag.String("app-config", getEnv("SAKHANEWS_APP_CONFIG", "config.yaml"), "Path to application configuration (SAKHANEWS_APP_CONFIG)")
	persistent := flag.Bool("persistent", true, "Mirror the frontier to disk so an interrupted crawl can resume")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load crawl config: %v", err)
	}

	// Environment settings with defaults when no app config file exists.
	fileCfg, err := config.LoadFileConfig(*appConfigPath)
	if err != nil {
		log.Fatalf("Failed to load app config: %v", err)
	}
	if fileCfg == nil {
		fileCfg = &config.FileConfig{}
	}
	if fileCfg.Storage.AssetsDir == "" {
		fileCfg.Storage.AssetsDir = "assets"
	}
	if fileCfg.Storage.FrontierPath == "" {
		fileCfg.Storage.FrontierPath = "frontier.json"
	}
	if fileCfg.Storage.MetaDSN == "" {
		fileCfg.Storage.MetaDSN = "meta.db"
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v, shutting down", sig)
		cancel()
	}()

	if err := run(ctx, cfg, fileCfg, *persistent); err != nil {
		log.Fatalf("Crawl failed: %v", err)
	}
}

// run drives one full crawl: discovery, extraction, persistence.
func run(ctx context.Context, cfg *config.Config, fileCfg *config.FileConfig, persistent bool) error {
	fetcher := sakhanews.NewHTTPFetcher(cfg)

	var store sakhanews.FrontierStore = sakhanews.MemoryStore{}
	if persistent {
		store = sakhanews.NewFileStore(fileCfg.Storage.FrontierPath)
	}

	// Optional feed pre-seeding: any article URLs the site feed announces are
	// folded into the frontier before the seed pages are crawled.
	if fileCfg.FeedURL != "" {
		if err := preSeedFromFeed(fileCfg.FeedURL, store); err != nil {
			log.Printf("WARN: Feed pre-seeding failed: %v", err)
		}
	}

	crawler := sakhanews.NewCrawler(cfg, fetcher, store)
	urls, err := crawler.Discover(ctx)
	if err != nil {
		return err
	}
	log.Printf("INFO: Discovered %d article URLs", len(urls))

	articleStore, err := storage.NewArticleStore(fileCfg.Storage.AssetsDir)
	if err != nil {
		return err
	}

	metaStore, err := storage.NewMetaStore(fileCfg.Storage.MetaDSN)
	if err != nil {
		return err
	}
	defer metaStore.Close()

	session, err := metaStore.BeginSession(len(cfg.SeedURLs))
	if err != nil {
		return err
	}

	extractor := sakhanews.NewExtractor(cfg, fetcher)
	saved := 0
	for i, url := range urls {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		article, err := extractor.Extract(ctx, url, i+1)
		if err != nil {
			// One article's failure never aborts the rest of the run.
			var structureErr *sakhanews.StructureError
			switch {
			case errors.Is(err, sakhanews.ErrFetch):
				log.Printf("WARN: Skipping %s: %v", url, err)
			case errors.As(err, &structureErr):
				log.Printf("WARN: Skipping %s: %v", url, structureErr)
			default:
				log.Printf("ERROR: Extraction failed for %s: %v", url, err)
			}
			continue
		}

		if err := articleStore.Save(article); err != nil {
			log.Printf("ERROR: Failed to save article %d: %v", article.ID, err)
			continue
		}
		if err := metaStore.IndexArticle(session.ID, article); err != nil {
			log.Printf("ERROR: Failed to index article %d: %v", article.ID, err)
			continue
		}
		saved++
	}

	log.Printf("INFO: Saved %d of %d articles (session %s)", saved, len(urls), session.ID)
	return nil
}

// preSeedFromFeed folds the site feed's article links into the frontier.
func preSeedFromFeed(feedURL string, store sakhanews.FrontierStore) error {
	feed, err := sakhanews.FetchFeed(feedURL)
	if err != nil {
		return err
	}

	frontier, err := store.Load()
	if err != nil {
		return err
	}

	added := 0
	for _, url := range sakhanews.FeedArticleURLs(feed) {
		duplicate := false
		for _, known := range frontier {
			if known == url {
				duplicate = true
				break
			}
		}
		if !duplicate {
			frontier = append(frontier, url)
			added++
		}
	}

	if added > 0 {
		if err := store.Save(frontier); err != nil {
			return err
		}
		log.Printf("INFO: Pre-seeded %d article URLs from feed", added)
	}
	return nil
}
