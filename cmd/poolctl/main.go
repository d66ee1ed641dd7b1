// Command poolctl is a terminal view of the poolpro dashboard.
//
//	poolctl customers [-q term] [-status active|paused|inactive|all]
//
// The API base URL comes from POOLPRO_API_URL.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"poolpro/internal/client"
	"poolpro/internal/domain/entities"
	"poolpro/internal/domain/query"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	api := client.New(os.Getenv("POOLPRO_API_URL"))

	switch args[0] {
	case "customers":
		fs := flag.NewFlagSet("customers", flag.ContinueOnError)
		fs.SetOutput(stderr)
		term := fs.String("q", "", "search name, email, phone or address")
		status := fs.String("status", query.All, "status tab: active, paused, inactive or all")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		var page client.Page[entities.Customer]
		if !page.Load(ctx, api.ListCustomers) {
			fmt.Fprintf(stderr, "Failed to load customers: %s\n", page.Err)
			return 1
		}
		fmt.Fprintln(stdout, renderCustomers(page.Items, *term, *status))
		return 0
	default:
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: poolctl customers [-q term] [-status active|paused|inactive|all]")
}
