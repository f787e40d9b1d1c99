package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/term"

	"truongphat/internal/apiclient"
	"truongphat/internal/models"
)

// adminctl is a small terminal client for the back-office API. The session
// guard keeps the access token fresh across invocations; when a refresh
// fails the stored session is dropped and the user is told to log in again.
func main() {
	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	loginEmail := loginCmd.String("email", "", "staff email (required)")

	contactsCmd := flag.NewFlagSet("contacts", flag.ExitOnError)
	contactsStatus := contactsCmd.String("status", "", "filter by status: new, read or replied")
	contactsPage := contactsCmd.Int("page", 1, "page number")
	contactsSize := contactsCmd.Int("size", 20, "page size")

	markCmd := flag.NewFlagSet("mark", flag.ExitOnError)
	markID := markCmd.Int64("id", 0, "contact ID (required)")
	markStatus := markCmd.String("status", "read", "new, read or replied")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	store := apiclient.NewFileSessionStore(sessionPath())
	client := apiclient.NewClient(baseURL, store, func() {
		fmt.Fprintln(os.Stderr, "Session expired, please log in again.")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch os.Args[1] {
	case "login":
		loginCmd.Parse(os.Args[2:])
		if *loginEmail == "" {
			fmt.Println("Error: -email flag is required")
			loginCmd.PrintDefaults()
			os.Exit(1)
		}
		handleLogin(ctx, client, *loginEmail)

	case "logout":
		if err := client.Logout(ctx); err != nil {
			log.Fatalf("Logout failed: %v", err)
		}
		fmt.Println("Logged out.")

	case "me":
		staff, err := client.Me(ctx)
		if err != nil {
			log.Fatalf("Failed to fetch profile: %v", err)
		}
		fmt.Printf("%s <%s> role=%s active=%v\n", staff.FullName, staff.Email, staff.RoleName, staff.IsActive)

	case "stats":
		stats, err := client.DashboardStats(ctx)
		if err != nil {
			log.Fatalf("Failed to fetch stats: %v", err)
		}
		fmt.Printf("Staffs:     %d\n", stats.Staffs)
		fmt.Printf("Blogs:      %d (types: %d)\n", stats.Blogs, stats.BlogTypes)
		fmt.Printf("Projects:   %d (categories: %d)\n", stats.Projects, stats.Categories)
		fmt.Printf("Contacts:   %d\n", stats.Contacts)
		for status, count := range stats.ContactsByState {
			fmt.Printf("  %-8s %d\n", status, count)
		}

	case "contacts":
		contactsCmd.Parse(os.Args[2:])
		handleContacts(ctx, client, *contactsStatus, *contactsPage, *contactsSize)

	case "mark":
		markCmd.Parse(os.Args[2:])
		if *markID == 0 {
			fmt.Println("Error: -id flag is required")
			markCmd.PrintDefaults()
			os.Exit(1)
		}
		if err := client.MarkContact(ctx, *markID, *markStatus); err != nil {
			log.Fatalf("Failed to update contact: %v", err)
		}
		fmt.Printf("Contact %d marked %s.\n", *markID, *markStatus)

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleLogin(ctx context.Context, client *apiclient.Client, email string) {
	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}

	result, err := client.Login(ctx, email, string(password))
	if err != nil {
		log.Fatalf("Login failed: %v", err)
	}
	fmt.Printf("Logged in as %s <%s>.\n", result.FullName, result.Email)
}

func handleContacts(ctx context.Context, client *apiclient.Client, status string, page, size int) {
	list, err := client.ListContacts(ctx, status, models.Page{Number: page, Size: size})
	if err != nil {
		log.Fatalf("Failed to list contacts: %v", err)
	}

	fmt.Printf("%-5s %-8s %-22s %-28s %s\n", "ID", "STATUS", "NAME", "EMAIL", "SUBJECT")
	for _, c := range list.Items {
		fmt.Printf("%-5d %-8s %-22s %-28s %s\n", c.ID, c.Status, c.FullName, c.Email, c.Subject)
	}
	fmt.Printf("Page %d of %d total\n", list.Page, list.Total)
}

// sessionPath returns the per-user session file location.
func sessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".truongphat-session.json"
	}
	return filepath.Join(home, ".truongphat", "session.json")
}

func printUsage() {
	fmt.Println("Usage: adminctl <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  login -email <email>   Log in and store a session")
	fmt.Println("  logout                 Revoke the session")
	fmt.Println("  me                     Show the logged-in profile")
	fmt.Println("  stats                  Show the dashboard overview")
	fmt.Println("  contacts [flags]       List contact submissions")
	fmt.Println("  mark -id <id> [flags]  Update a contact's status")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  API_BASE_URL           API address (default http://localhost:8080)")
}
