package main

import (
	"context"
	"fmt"
	"os"

	"libraryapi/internal/cache"
	"libraryapi/internal/config"
	"libraryapi/internal/services/library"
	"libraryapi/internal/store"
)

func main() {
	cfg := config.Load() // reads STORE_DRIVER and DB_DSN from env
	ctx := context.Background()

	st, err := store.Open(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open store:", err)
		os.Exit(1)
	}
	defer st.Close()

	registry, err := library.NewRegistry()
	if err != nil {
		panic(err)
	}
	svc := library.NewService(st.Authors, st.Books, st.UnitOfWork, cache.Noop{}, registry)

	n, err := svc.Seed(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "seed:", err)
		os.Exit(1)
	}
	fmt.Printf("seeded %d authors\n", n)
}
