package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"book_my_hotel/internal/adapters/jsonserver"
	"book_my_hotel/internal/shared"
)

func TestCatalogSource(t *testing.T) {
	if _, ok := catalogSource("http://localhost:3001", 5).(*jsonserver.Client); !ok {
		t.Fatal("URL source must use the HTTP client")
	}
	if _, ok := catalogSource("./db.json", 5).(*jsonserver.FileSource); !ok {
		t.Fatal("path source must read the file")
	}
}

func TestRootCmdDefaults(t *testing.T) {
	cmd := rootCmd(shared.Config{SeedSource: "http://json:3001", SeedWorkers: 3, SeedRPS: 7})
	if err := cmd.ParseFlags([]string{"--workers", "5", "--id", "42"}); err != nil {
		t.Fatal(err)
	}
	src, _ := cmd.Flags().GetString("source")
	workers, _ := cmd.Flags().GetInt("workers")
	rps, _ := cmd.Flags().GetInt("rps")
	id, _ := cmd.Flags().GetInt64("id")
	if src != "http://json:3001" || workers != 5 || rps != 7 || id != 42 {
		t.Fatalf("unexpected flags: %s %d %d %d", src, workers, rps, id)
	}
}

func TestCheckReachable(t *testing.T) {
	ctx := context.Background()

	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer up.Close()
	if err := checkReachable(ctx, catalogSource(up.URL, 0)); err != nil {
		t.Fatalf("reachable server: %v", err)
	}

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	down.Close()
	if err := checkReachable(ctx, catalogSource(down.URL, 0)); err == nil {
		t.Fatal("closed server must be reported unreachable")
	}

	// files are not checked up front; a missing file fails on fetch
	if err := checkReachable(ctx, catalogSource(filepath.Join(t.TempDir(), "none.json"), 0)); err != nil {
		t.Fatalf("file source: %v", err)
	}
}
