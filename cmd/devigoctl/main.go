// Command devigoctl is a small operator CLI for the Devigo admin API:
// log in, inspect the current user, list resources, and work the inquiry
// queue from a terminal.
//
// Usage:
//
//	devigoctl login -username admin -password ...
//	devigoctl whoami
//	devigoctl services
//	devigoctl projects
//	devigoctl inquiries [-status new]
//	devigoctl inquiry-read <id>
//	devigoctl logout
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	devigo "github.com/developer9560/devigo-go"
	"github.com/developer9560/devigo-go/auth"
	"github.com/developer9560/devigo-go/pkg/config"
)

func main() {
	// Initialize logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	client, err := devigo.New(cfg, devigo.WithLogger(log.Logger))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create client")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.Timeout)
	defer cancel()

	if err := run(ctx, client, os.Args[1], os.Args[2:]); err != nil {
		log.Fatal().Err(err).Msg("Command failed")
	}
}

func run(ctx context.Context, client *devigo.Client, command string, args []string) error {
	switch command {
	case "login":
		return runLogin(ctx, client, args)
	case "logout":
		client.Auth.Logout()
		fmt.Println("Logged out.")
		return nil
	case "whoami":
		return runWhoami(ctx, client)
	case "services":
		return runServices(ctx, client)
	case "projects":
		return runProjects(ctx, client)
	case "inquiries":
		return runInquiries(ctx, client, args)
	case "inquiry-read":
		if len(args) != 1 {
			return fmt.Errorf("usage: devigoctl inquiry-read <id>")
		}
		inquiry, err := client.Inquiries.MarkAsRead(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Inquiry %d is now %q.\n", inquiry.ID, inquiry.Status)
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func runLogin(ctx context.Context, client *devigo.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("username", os.Getenv("DEVIGO_USERNAME"), "admin username")
	password := fs.String("password", os.Getenv("DEVIGO_PASSWORD"), "admin password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := client.Auth.Login(ctx, auth.Credentials{
		Username: *username,
		Password: *password,
	})
	if err != nil {
		return err
	}

	if result.User != nil {
		fmt.Printf("Logged in as %s <%s>.\n", result.User.Username, result.User.Email)
	} else {
		fmt.Println("Logged in.")
	}

	if claims, err := client.Auth.AccessTokenClaims(); err == nil && !claims.ExpiresAt.IsZero() {
		fmt.Printf("Access token expires at %s.\n", claims.ExpiresAt.Format(time.RFC3339))
	}
	return nil
}

func runWhoami(ctx context.Context, client *devigo.Client) error {
	if !client.Auth.IsAuthenticated() {
		fmt.Println("Not logged in.")
		return nil
	}
	profile, err := client.Auth.RefreshUserProfile(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s> (id %d)\n", profile.Username, profile.Email, profile.ID)
	return nil
}

func runServices(ctx context.Context, client *devigo.Client) error {
	page, err := client.Services.List(ctx, devigo.ListParams{Ordering: "order"})
	if err != nil {
		return err
	}
	fmt.Printf("%d services (%d total):\n", len(page.Items), page.Count)
	for _, service := range page.Items {
		fmt.Printf("  [%d] %s\n", service.ID, service.Title)
	}
	return nil
}

func runProjects(ctx context.Context, client *devigo.Client) error {
	page, err := client.Projects.List(ctx, devigo.ListParams{Ordering: "-created_at"})
	if err != nil {
		return err
	}
	fmt.Printf("%d projects (%d total):\n", len(page.Items), page.Count)
	for _, project := range page.Items {
		fmt.Printf("  [%d] %s (%s)\n", project.ID, project.Title, project.Category)
	}
	return nil
}

func runInquiries(ctx context.Context, client *devigo.Client, args []string) error {
	fs := flag.NewFlagSet("inquiries", flag.ExitOnError)
	status := fs.String("status", "", "filter by status (new, read, in_progress, responded, closed)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	page, err := client.Inquiries.List(ctx, devigo.ListParams{Status: *status, Ordering: "-created_at"})
	if err != nil {
		return err
	}
	fmt.Printf("%d inquiries (%d total):\n", len(page.Items), page.Count)
	for _, inquiry := range page.Items {
		fmt.Printf("  [%d] %-12s %s <%s>: %s\n", inquiry.ID, inquiry.Status, inquiry.Name, inquiry.Email, inquiry.Subject)
	}
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `devigoctl - Devigo admin API client

Commands:
  login -username U -password P   authenticate and persist the session
  logout                          clear the persisted session
  whoami                          show the current user
  services                        list services
  projects                        list projects
  inquiries [-status S]           list inquiries
  inquiry-read <id>               mark an inquiry as read`)
}
