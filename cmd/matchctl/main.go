package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"traits-matcher/internal/config"
	"traits-matcher/internal/db"
	"traits-matcher/internal/domain"
	"traits-matcher/internal/repository"
	"traits-matcher/internal/service"
)

const usage = `usage:
  matchctl seed <file>                    load traits from a JSON file
  matchctl match <company> <job text...>  rank persons for a job description
  matchctl token <subject>                mint a bearer token from AUTH_SECRET`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	ctx := context.Background()

	switch os.Args[1] {
	case "seed":
		if len(os.Args) != 3 {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		if err := seedTraits(ctx, cfg, logger, os.Args[2]); err != nil {
			log.Fatal(err)
		}
	case "match":
		if len(os.Args) < 4 {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		company := os.Args[2]
		jobDescription := strings.Join(os.Args[3:], " ")
		if err := runMatch(ctx, cfg, logger, company, jobDescription); err != nil {
			log.Fatal(err)
		}
	case "token":
		if len(os.Args) != 3 {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		if err := mintToken(cfg, os.Args[2]); err != nil {
			log.Fatal(err)
		}
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
}

// seedTraits carga rasgos desde un archivo JSON, saltando los duplicados.
func seedTraits(ctx context.Context, cfg *config.Config, logger *zap.Logger, path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var traits []domain.Trait
	if err := json.Unmarshal(payload, &traits); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	pool, err := db.NewPool(ctx, cfg.TraitsDatabaseURL)
	if err != nil {
		return fmt.Errorf("traits db connect: %w", err)
	}
	defer pool.Close()

	repo := repository.NewPgTraitRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		return err
	}

	created := 0
	for _, t := range traits {
		if t.Name == "" || !domain.ValidScore(t.Friendliness) || !domain.ValidScore(t.Dominance) {
			fmt.Printf("skip invalid entry %q\n", t.Name)
			continue
		}
		if err := repo.Create(ctx, t); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				fmt.Printf("skip existing trait %q\n", t.Name)
				continue
			}
			return err
		}
		created++
	}

	fmt.Printf("seeded %d of %d traits\n", created, len(traits))
	return nil
}

// runMatch ejecuta un ranking contra los stores configurados y lo imprime.
func runMatch(ctx context.Context, cfg *config.Config, logger *zap.Logger, company, jobDescription string) error {
	personsPool, err := db.NewPool(ctx, cfg.PersonsDatabaseURL)
	if err != nil {
		return fmt.Errorf("persons db connect: %w", err)
	}
	defer personsPool.Close()

	traitsPool, err := db.NewPool(ctx, cfg.TraitsDatabaseURL)
	if err != nil {
		return fmt.Errorf("traits db connect: %w", err)
	}
	defer traitsPool.Close()

	personRepo := repository.NewPgPersonRepository(personsPool)
	traitRepo := repository.NewPgTraitRepository(traitsPool)
	matcher := service.NewMatchService(personRepo, traitRepo, logger)

	matches, err := matcher.FindMatches(ctx, company, jobDescription)
	if err != nil {
		return err
	}

	for i, name := range matches {
		fmt.Printf("%d. %s\n", i+1, name)
	}
	return nil
}

// mintToken firma un bearer token con el secreto configurado.
func mintToken(cfg *config.Config, subject string) error {
	if cfg.AuthSecret == "" {
		return errors.New("AUTH_SECRET is not set")
	}
	tokens := service.NewTokenService(cfg.AuthSecret, time.Duration(cfg.AuthTokenTTLMinutes)*time.Minute)
	token, err := tokens.Issue(subject)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
