package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"vanity/internal/advisor"
	"vanity/internal/catalog"
	"vanity/internal/config"
	"vanity/internal/logging"
	"vanity/internal/store"
	"vanity/internal/ui"
	"vanity/internal/websearch"
)

func main() {
	search := flag.String("s", "", "")
	searchLong := flag.String("search", "", "list matching products and exit")
	category := flag.String("c", "", "")
	categoryLong := flag.String("category", "", "restrict to one category")
	n := flag.Int("n", 0, "max results")
	reset := flag.Bool("reset", false, "wipe saved selection, chat history, and settings")
	catalogPath := flag.String("catalog", "", "path to a products.json catalog")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `vanity - L'Oréal product picker and beauty routine advisor

usage: vanity [options]

Run with no options to open the interactive advisor.

options:
  -s, --search TERM     list matching products and exit
  -c, --category NAME   restrict results to one category
  -n NUM                max results (default: all)
  --catalog PATH        path to a products.json catalog
  --reset               wipe saved selection, chat history, and settings

environment:
  VANITY_PROXY_URL     chat relay endpoint (checked first, no local key)
  OPENAI_API_KEY       OpenAI API key
  OLLAMA_CHAT_MODEL    local Ollama chat model
  OLLAMA_HOST          Ollama address (usually http://localhost:11434)
  SERPER_API_KEY       Serper key for web-enriched replies (optional)
  VANITY_REDIS_ADDR    store state in Redis instead of a local database
`)
	}

	flag.Parse()

	// Merge short and long forms.
	if *searchLong != "" {
		*search = *searchLong
	}
	if *categoryLong != "" {
		*category = *categoryLong
	}

	var err error
	switch {
	case *reset:
		err = runReset()
	case *search != "" || *category != "":
		err = runList(*search, *category, *n, *catalogPath)
	default:
		err = runTUI(*catalogPath)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "vanity: %v\n", err)
		os.Exit(1)
	}
}

// --- Interactive mode ---

func runTUI(catalogOverride string) error {
	cfg := config.Default()

	if err := os.MkdirAll(cfg.DataDir(), 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	logger := logging.New(cfg.LogPath())
	defer logger.Sync()

	st, err := store.Open(cfg.DBPath(), logger)
	if err != nil {
		return err
	}
	defer st.Close()

	var idx *catalog.Index
	products, loadErr := catalog.Load(cfg.CatalogPath(catalogOverride))
	if loadErr == nil {
		idx = catalog.NewIndex(products)
		logger.Info("catalog loaded", zap.Int("products", idx.Len()))
	} else {
		logger.Error("catalog load failed", zap.Error(loadErr))
	}

	var adv ui.Advisor
	if c := advisor.NewFromEnv(websearch.NewFromEnv(), logger); c != nil {
		adv = c
	}

	m := ui.New(ui.Options{
		Index:   idx,
		LoadErr: loadErr,
		Store:   st,
		Advisor: adv,
		Logger:  logger,
		State:   st.Load(),
	})

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// --- List mode ---

func runList(term, category string, limit int, catalogOverride string) error {
	cfg := config.Default()

	products, err := catalog.Load(cfg.CatalogPath(catalogOverride))
	if err != nil {
		return err
	}

	matched := catalog.Filter(products, term, category)
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}

	if len(matched) == 0 {
		fmt.Println("No products match.")
		return nil
	}

	for _, p := range matched {
		fmt.Printf("[%d] %s\n    %s · %s\n", p.ID, p.Name, p.Brand, p.Category)
	}
	return nil
}

// --- Reset mode ---

func runReset() error {
	cfg := config.Default()

	logger := logging.New(cfg.LogPath())
	defer logger.Sync()

	st, err := store.Open(cfg.DBPath(), logger)
	if err != nil {
		return err
	}
	defer st.Close()

	st.Reset()
	fmt.Println("Saved state cleared.")
	return nil
}
