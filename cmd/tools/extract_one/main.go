package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/procura/notice-harvester/internal/eforms"
)

// Extracts a single eForms XML document and prints the record as JSON.
// Handy for checking field mappings against a raw notice.
func main() {
	lang := flag.String("lang", eforms.DefaultLanguage, "languageID tag for localized fields")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("Usage: extract_one [-lang DEU] notice.xml")
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to read %s: %v", flag.Arg(0), err)
	}

	extractor := eforms.NewExtractor(*lang)
	notice, err := extractor.Extract(data)
	if err != nil {
		log.Fatalf("Extraction failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(notice); err != nil {
		log.Fatal(err)
	}
}
