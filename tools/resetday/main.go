// Command resetday force-clears one attendance day over the admin endpoint.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	json "github.com/goccy/go-json"
)

func main() {
	addr := flag.String("addr", "http://localhost:8080", "futsald base URL")
	day := flag.String("day", "", "day key YYYY-MM-DD (default: server's active day)")
	purge := flag.Bool("purge", false, "drop the whole day record instead of clearing participants")
	flag.Parse()

	body, err := json.Marshal(map[string]any{"day": *day, "purge": *purge})
	if err != nil {
		fmt.Fprintf(os.Stderr, "resetday: %s\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Post(*addr+"/admin/reset", "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Fprintf(os.Stderr, "resetday: %s\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	out, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "resetday: %s: %s\n", resp.Status, bytes.TrimSpace(out))
		os.Exit(1)
	}
	fmt.Printf("%s\n", bytes.TrimSpace(out))
}
