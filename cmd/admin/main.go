package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/obrienteixeira/tokyo-manicure/internal/auth"
	"github.com/obrienteixeira/tokyo-manicure/internal/config"
	"github.com/obrienteixeira/tokyo-manicure/internal/core"
	"github.com/obrienteixeira/tokyo-manicure/internal/records"
	"github.com/obrienteixeira/tokyo-manicure/internal/storage"
)

// Administrative tool for the salon database. Subcommands:
//
//	create-user  -name -email -password [-role]
//	seed         populate an empty database with a starter catalog
func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
	}

	cfg := config.Load()
	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer repo.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch os.Args[1] {
	case "create-user":
		createUser(ctx, repo, os.Args[2:])
	case "seed":
		seed(ctx, repo)
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: admin <create-user|seed> [flags]")
	os.Exit(2)
}

func createUser(ctx context.Context, store records.Store, args []string) {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "login email")
	password := fs.String("password", "", "plaintext password, hashed before storage")
	role := fs.String("role", string(core.RoleUser), "user role")
	_ = fs.Parse(args)

	if *name == "" || *email == "" || *password == "" {
		fs.Usage()
		os.Exit(2)
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	user, err := store.SaveUser(ctx, core.User{
		Name:         *name,
		Email:        *email,
		PasswordHash: hash,
		Role:         core.Role(*role),
		Active:       true,
	})
	if err != nil {
		log.Fatalf("create user: %v", err)
	}
	fmt.Printf("created user %d (%s)\n", user.ID, user.Email)
}

func seed(ctx context.Context, store records.Store) {
	services := []core.Service{
		{Name: "Manicure", Price: core.Money{Cents: 5000}, DurationMinutes: 45, Active: true},
		{Name: "Pedicure", Price: core.Money{Cents: 6000}, DurationMinutes: 60, Active: true},
		{Name: "Nail Art", Price: core.Money{Cents: 8000}, DurationMinutes: 90, Active: true},
	}
	for _, svc := range services {
		if _, err := store.SaveService(ctx, svc); err != nil {
			log.Fatalf("seed service %q: %v", svc.Name, err)
		}
	}

	products := []core.Product{
		{Name: "Nail Polish", Price: core.Money{Cents: 2500}, Stock: 20, MinStock: 5, Active: true},
		{Name: "Cuticle Oil", Price: core.Money{Cents: 1800}, Stock: 15, MinStock: 3, Active: true},
	}
	for _, p := range products {
		if _, err := store.SaveProduct(ctx, p); err != nil {
			log.Fatalf("seed product %q: %v", p.Name, err)
		}
	}

	packages := []core.Package{
		{
			Name:             "Monthly Care",
			Price:            core.Money{Cents: 18000},
			OriginalPrice:    core.Money{Cents: 22000},
			IncludedServices: "Manicure, Pedicure",
			ValidityDays:     30,
			Active:           true,
		},
	}
	for _, pkg := range packages {
		if _, err := store.SavePackage(ctx, pkg); err != nil {
			log.Fatalf("seed package %q: %v", pkg.Name, err)
		}
	}

	fmt.Println("seeded starter catalog")
}
