// Import tool for loading court spreadsheets into a running Gavel
// instance.
//
// Usage:
//   go run cmd/gavel-import/main.go -file acervo.xlsx -dataset ledger -url http://localhost:8080
//
// This tool:
//  1. Parses the spreadsheet locally (XLSX or tab-separated text)
//  2. Normalizes the rows the same way the server does
//  3. Uploads the result through PUT /datasets/{ledger|cases}
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/courtmetrics/gavel/internal/ingest"
)

func main() {
	// Parse flags
	filePath := flag.String("file", "", "Path to the spreadsheet (.xlsx or .tsv)")
	baseURL := flag.String("url", "http://localhost:8080", "Gavel base URL")
	dataset := flag.String("dataset", "ledger", "Target dataset: ledger or cases")
	key := flag.String("key", "", "Dashboard key for protected instances")
	flag.Parse()

	if *filePath == "" {
		fmt.Println("Usage: gavel-import -file acervo.xlsx [-dataset ledger] [-url http://localhost:8080]")
		fmt.Println("\nFlags:")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if *dataset != "ledger" && *dataset != "cases" {
		fmt.Println("ERROR: -dataset must be ledger or cases")
		os.Exit(1)
	}

	if err := checkHealth(*baseURL); err != nil {
		fmt.Printf("ERROR: Gavel not reachable at %s: %v\n", *baseURL, err)
		os.Exit(1)
	}

	raw, err := readFile(*filePath)
	if err != nil {
		fmt.Printf("ERROR: could not read %s: %v\n", *filePath, err)
		os.Exit(1)
	}
	fmt.Printf("Parsed %d rows from %s\n", len(raw), *filePath)

	accepted, err := upload(*baseURL, *dataset, *key, raw)
	if err != nil {
		fmt.Printf("ERROR: upload failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Uploaded dataset %q: %d rows accepted\n", *dataset, accepted)
}

func readFile(path string) ([]ingest.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if filepath.Ext(path) == ".xlsx" {
		return ingest.ReadXLSX(f)
	}
	return ingest.ReadTSV(f)
}

func upload(baseURL, dataset, key string, raw []ingest.RawRow) (int, error) {
	body, err := json.Marshal(raw)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequest(http.MethodPut, baseURL+"/datasets/"+dataset, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("X-Dashboard-Key", key)
	}

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("server returned %s", resp.Status)
	}

	var result struct {
		Saved int `json:"saved"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, err
	}
	return result.Saved, nil
}

func checkHealth(baseURL string) error {
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health returned %s", resp.Status)
	}
	return nil
}
