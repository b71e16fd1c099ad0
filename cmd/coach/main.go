// Command coach is a terminal client for the coaching API: it drives the
// same session layer the app frontends use, plus the AI calorie estimator.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fitcoach/coaching-app/internal/calories"
	"fitcoach/coaching-app/internal/client"
	"fitcoach/coaching-app/internal/config"
	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Fprintln(os.Stderr, "could not load config:", err)
		os.Exit(1)
	}
	logger.Init(logger.Options{Level: cfg.Log.Level, Pretty: true})

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	session := newSession(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch os.Args[1] {
	case "login":
		err = cmdLogin(ctx, session, os.Args[2:])
	case "logout":
		session.Logout()
		fmt.Println("logged out")
	case "status":
		err = cmdStatus(ctx, session)
	case "plans":
		err = cmdPlans(ctx, session)
	case "notifications":
		err = cmdNotifications(ctx, session)
	case "calories":
		err = cmdCalories(ctx, cfg, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: coach <command> [flags]

commands:
  login          authenticate and persist the session
  logout         end the session
  status         show the current principal and cached data
  plans          list training plans
  notifications  list the principal's notifications
  calories       estimate daily calorie needs`)
}

func newSession(cfg config.Config) *client.Session {
	gateway := client.NewGateway(cfg.Client.BaseURL, nil)
	identityPath := filepath.Join(identityDir(), "session")
	return client.NewSession(gateway, client.NewFileIdentityStore(identityPath))
}

func identityDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".coach"
	}
	return filepath.Join(home, ".coach")
}

func cmdLogin(ctx context.Context, session *client.Session, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	user := fs.String("user", "", "phone number or email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	if *user == "" || *password == "" {
		return fmt.Errorf("both -user and -password are required")
	}

	principal, err := session.Login(ctx, *user, *password)
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s (%s)\n", displayName(principal), principal.Role)
	return nil
}

func cmdStatus(ctx context.Context, session *client.Session) error {
	ok, err := session.Start(ctx)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("not logged in")
		return nil
	}

	principal := session.Principal()
	fmt.Printf("logged in as %s (%s)\n", displayName(principal), principal.Role)
	fmt.Printf("  plans: %d\n", len(session.Plans()))
	fmt.Printf("  notifications: %d (%d unread)\n", len(session.Notifications()), session.UnreadCount())
	if principal.IsAdmin() || principal.IsTrainer() {
		fmt.Printf("  users: %d\n", len(session.Users()))
	}
	if principal.IsTrainee() {
		_, schedule := session.Schedule()
		fmt.Printf("  schedule items: %d\n", len(schedule))
	}
	return nil
}

func cmdPlans(ctx context.Context, session *client.Session) error {
	// Plans are readable without a session.
	if _, err := session.Start(ctx); err != nil {
		return err
	}
	if err := session.FetchPlans(ctx); err != nil {
		return err
	}
	for _, plan := range session.Plans() {
		fmt.Printf("%s  %-24s %6.2f  %d months\n", plan.ID.Hex(), plan.Name, plan.Price, plan.DurationMonths)
	}
	return nil
}

func cmdNotifications(ctx context.Context, session *client.Session) error {
	ok, err := session.Start(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("not logged in")
	}

	for _, n := range session.Notifications() {
		marker := " "
		if !n.Read {
			marker = "*"
		}
		fmt.Printf("%s %s  %s: %s\n", marker, n.SentAt.Format("2006-01-02 15:04"), n.Title, n.Message)
	}
	return nil
}

func cmdCalories(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("calories", flag.ExitOnError)
	age := fs.Int("age", 0, "age in years")
	weight := fs.Int("weight", 0, "weight in kg")
	height := fs.Int("height", 0, "height in cm")
	gender := fs.String("gender", "", "male or female")
	activity := fs.String("activity", string(domain.ActivityModerate), "sedentary, light, moderate, active or very_active")
	goal := fs.String("goal", string(domain.GoalMaintainWeight), "lose_weight, maintain_weight or gain_weight")
	fs.Parse(args)

	if *age <= 0 || *weight <= 0 || *height <= 0 || *gender == "" {
		return fmt.Errorf("-age, -weight, -height and -gender are required")
	}
	if cfg.OpenAI.APIKey == "" {
		return calories.ErrNotConfigured
	}

	estimator := calories.NewEstimator(cfg.OpenAI.APIKey)
	if cfg.OpenAI.Model != "" {
		estimator = estimator.WithModel(cfg.OpenAI.Model)
	}

	estimate, err := estimator.EstimateDailyCalories(ctx, domain.CalorieRequest{
		Age:           *age,
		WeightKg:      *weight,
		HeightCm:      *height,
		Gender:        domain.Gender(*gender),
		ActivityLevel: domain.ActivityLevel(*activity),
		Goal:          domain.CalorieGoal(*goal),
	})
	if err != nil {
		return err
	}
	fmt.Printf("estimated daily calories: %d\n", estimate)
	return nil
}

func displayName(user *domain.User) string {
	if user.Name != "" {
		return user.Name
	}
	return user.PhoneNumber
}
