package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"speakup/backend/internal/config"
	"speakup/backend/internal/identity"
	"speakup/backend/internal/models"
	"speakup/backend/internal/storage"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Intake/triage admin CLI. Issues reporter access codes, creates cases
// and links triaged reports to them, so the relay routes can be driven
// end to end without the rest of the platform.
func main() {
	godotenv.Load()
	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewService(db)
	resolver := identity.NewResolver(db)
	ctx := context.Background()

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "create-case":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin create-case <tenant_id> <reference_number>")
			os.Exit(1)
		}
		c := &models.Case{TenantID: os.Args[2], ReferenceNumber: os.Args[3]}
		if err := storageSvc.CreateCase(ctx, c); err != nil {
			log.Fatalf("Error creating case: %v", err)
		}
		fmt.Printf("Case %s created (%s).\n", c.ID, c.ReferenceNumber)

	case "issue-code":
		if len(os.Args) < 3 {
			fmt.Println("Usage: admin issue-code <tenant_id> [case_id] [contact_email]")
			os.Exit(1)
		}
		var caseID, contactEmail *string
		if len(os.Args) > 3 && os.Args[3] != "" {
			caseID = &os.Args[3]
		}
		if len(os.Args) > 4 && os.Args[4] != "" {
			contactEmail = &os.Args[4]
		}
		code, err := resolver.IssueAccessCode(ctx, os.Args[2], caseID, contactEmail)
		if err != nil {
			log.Fatalf("Error issuing access code: %v", err)
		}
		fmt.Printf("Access code: %s\n", code)

	case "link-case":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin link-case <access_code> <case_id>")
			os.Exit(1)
		}
		if err := resolver.LinkCase(ctx, os.Args[2], os.Args[3]); err != nil {
			log.Fatalf("Error linking case: %v", err)
		}
		fmt.Println("Report linked.")

	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}
