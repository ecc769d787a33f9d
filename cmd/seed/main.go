package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Abdelmagid1892/translation-office-app/internal/config"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
	pg "github.com/Abdelmagid1892/translation-office-app/internal/infra/db/postgres"
	"github.com/Abdelmagid1892/translation-office-app/internal/usecase"
)

const schemaPath = "deploy/postgres/init.sql"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool := pg.MustConnectPostgres(cfg.Database.URL)
	defer pool.Close()

	if schema, err := os.ReadFile(schemaPath); err == nil {
		if _, err := pool.Exec(ctx, string(schema)); err != nil {
			log.Fatalf("apply schema: %v", err)
		}
		fmt.Println("schema applied")
	} else {
		fmt.Printf("schema file %s not found, assuming migrated database\n", schemaPath)
	}

	userUC := usecase.NewUserUseCase(pg.NewUserRepo(pool))
	rateUC := usecase.NewRateUseCase(pg.NewRateRepo(pool))

	staff := []struct {
		Username string
		Role     model.Role
	}{
		{"manager1", model.RoleManager},
		{"translator1", model.RoleTranslator},
		{"translator2", model.RoleTranslator},
	}
	for _, s := range staff {
		u, err := userUC.Create(ctx, s.Username, s.Username+"@example.com", "changeme", s.Role)
		if errors.Is(err, domain.ErrAlreadyExists) {
			fmt.Printf("user %s already present\n", s.Username)
			continue
		}
		if err != nil {
			log.Fatalf("create user %q: %v", s.Username, err)
		}
		fmt.Printf("seeded user %s (%s, id=%s)\n", u.Username, u.Role, u.ID)
	}

	rates := []struct {
		Source, Target string
		PerWordMicros  int64
	}{
		{"en", "de", 100_000},
		{"en", "fr", 100_000},
		{"de", "en", 120_000},
	}
	for _, r := range rates {
		rate, err := rateUC.Create(ctx, r.Source, r.Target, r.PerWordMicros, "EUR")
		if errors.Is(err, domain.ErrAlreadyExists) {
			fmt.Printf("rate %s->%s already present\n", r.Source, r.Target)
			continue
		}
		if err != nil {
			log.Fatalf("create rate %s->%s: %v", r.Source, r.Target, err)
		}
		fmt.Printf("seeded rate %s->%s (%s %s per word)\n", rate.SourceLanguage, rate.TargetLanguage, model.FormatCents(rate.PerWordMicros/10_000), rate.Currency)
	}

	fmt.Println("seeding complete")
}
