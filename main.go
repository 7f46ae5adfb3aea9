package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"jpmorph/config"
	"jpmorph/lexicon"
	"jpmorph/tokenize"
)

func main() {
	var (
		configPath = flag.String("c", "", "path to a YAML config file")
		host       = flag.String("host", "", "host address to bind")
		port       = flag.Int("port", 0, "HTTP port")
		dictName   = flag.String("dict", "", "dictionary: ipa, uni, or a path to a compiled dictionary")
		userDict   = flag.String("user-dict", "", "user dictionary CSV path")
		mode       = flag.String("mode", "", "tokenization mode: normal, search or extended")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadFile(*configPath); err != nil {
			log.Fatalf("config: %v", err)
		}
	}
	// Flags set on the command line win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "host":
			cfg.Host = *host
		case "port":
			cfg.Port = *port
		case "dict":
			cfg.Dict = *dictName
		case "user-dict":
			cfg.UserDict = *userDict
		case "mode":
			cfg.Mode = *mode
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	lex, err := lexicon.Load(cfg.Dict, cfg.UserDict)
	if err != nil {
		log.Fatalf("dictionary load failed: %v", err)
	}

	m, err := tokenize.ParseMode(cfg.Mode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	tok := tokenize.New(lex, tokenize.WithMode(m), tokenize.WithCacheSize(cfg.CacheSize))

	mux := http.NewServeMux()
	mux.Handle("/tokenize", &tokenizeHandler{tok: tok})

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	log.Printf("serving on %s (dict=%s mode=%s)", addr, cfg.Dict, cfg.Mode)
	log.Fatal(http.ListenAndServe(addr, mux))
}
