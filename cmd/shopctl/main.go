package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/vogelpark/storefront/internal/cartstate"
	"github.com/vogelpark/storefront/internal/clientsession"
	"github.com/vogelpark/storefront/pkg/logger"
)

const defaultAPIURL = "http://localhost:3000"

func main() {
	_ = godotenv.Load()

	apiURL := flag.String("api", envOr("VOGELPARK_API_URL", defaultAPIURL), "storefront API base URL")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	logg := logger.New(logger.Options{ServiceName: "shopctl", Level: logger.ParseLevel(envOr("VOGELPARK_LOG_LEVEL", "warn"))})

	dir, err := stateDir()
	if err != nil {
		fail(err)
	}

	credStore, err := cartstate.NewFileSnapshotStore(filepath.Join(dir, "session.json"))
	if err != nil {
		fail(err)
	}
	cartSnapshot, err := cartstate.NewFileSnapshotStore(filepath.Join(dir, "cart.json"))
	if err != nil {
		fail(err)
	}

	session, err := clientsession.New(*apiURL, nil, credStore)
	if err != nil {
		fail(err)
	}

	gateway, err := cartstate.NewHTTPGateway(*apiURL, nil)
	if err != nil {
		fail(err)
	}

	store, err := cartstate.NewStore(cartstate.StoreParams{
		Session:  session,
		Gateway:  gateway,
		Snapshot: cartSnapshot,
		Logger:   logg,
	})
	if err != nil {
		fail(err)
	}

	// a fresh login folds the anonymous cart into the account's cart
	session.OnLogin(store.MergeOnLogin)

	ctx := context.Background()
	store.Load(ctx)

	switch cmd := args[0]; cmd {
	case "login":
		if len(args) != 3 {
			fail(fmt.Errorf("usage: shopctl login <username> <password>"))
		}
		if err := session.Login(ctx, args[1], args[2]); err != nil {
			fail(err)
		}
		fmt.Println("logged in as", args[1])

	case "logout":
		if err := session.Logout(ctx); err != nil {
			fail(err)
		}
		fmt.Println("logged out")

	case "add":
		if len(args) < 2 {
			fail(fmt.Errorf("usage: shopctl add <product-id> [title]"))
		}
		line := cartstate.Line{ProductID: args[1]}
		if len(args) > 2 {
			line.Title = args[2]
		}
		store.Add(ctx, line)
		fmt.Printf("cart now holds %d item(s)\n", store.Count())

	case "remove":
		if len(args) != 2 {
			fail(fmt.Errorf("usage: shopctl remove <product-id>"))
		}
		store.Remove(ctx, args[1])
		fmt.Printf("cart now holds %d item(s)\n", store.Count())

	case "show":
		lines := store.Snapshot()
		if len(lines) == 0 {
			fmt.Println("cart is empty")
			return
		}
		for _, line := range lines {
			title := line.Title
			if title == "" {
				title = line.ProductID
			}
			fmt.Printf("%3dx  %-40s  %s\n", line.Quantity, title, line.Price.StringFixed(2))
		}
		fmt.Printf("total items: %d\n", store.Count())

	case "sync":
		if err := store.Persist(ctx); err != nil {
			fail(err)
		}
		fmt.Println("cart synchronized")

	default:
		usage()
		os.Exit(2)
	}
}

func stateDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "vogelpark"), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: shopctl [-api URL] <command>

commands:
  login <username> <password>   authenticate and merge the local cart
  logout                        drop the session
  add <product-id> [title]      add one of a product
  remove <product-id>           remove one of a product
  show                          print the cart
  sync                          push the cart to its durable home`)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "shopctl:", err)
	os.Exit(1)
}
