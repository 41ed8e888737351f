// Command create-admin registers a user and promotes it to superadmin. It is
// the only way to obtain the first superadmin.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"restaurant-graphql-api/internal/app/users"
	"restaurant-graphql-api/internal/auth"
	"restaurant-graphql-api/internal/config"
	"restaurant-graphql-api/internal/logging"
	"restaurant-graphql-api/internal/mongodb"
)

// system is the identity the command acts as when promoting the new user.
var system = auth.Identity{ID: "create-admin", Role: auth.RoleSuperadmin}

var (
	email    string
	name     string
	password string
)

var rootCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create a superadmin account",
	Long: `Create a user and give it the superadmin role.

Connection settings come from the same config file and environment as the
API server (CONFIG_PATH, DATABASE_URL, MONGO_DATABASE, SECRET). Flags that
are not given are prompted for.

Examples:
  create-admin
  create-admin --email root@example.com --name Root`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.Flags().StringVar(&email, "email", "", "Email address of the new superadmin")
	rootCmd.Flags().StringVar(&name, "name", "", "Display name")
	rootCmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, in io.Reader, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}

	db, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		return err
	}
	defer closeDatabase(db, logger)

	if err := db.EnsureIndexes(ctx); err != nil {
		return err
	}

	svc := users.NewService(
		users.NewMongoRepository(db),
		auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.TokenTTL),
		auth.NewPasswordHasher(),
	)

	input, err := collectInput(in, out, users.RegisterInput{Email: email, Name: name, Password: password})
	if err != nil {
		return err
	}
	u, err := createAdmin(ctx, svc, input)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "created superadmin %s (%s)\n", u.Email, u.ID)
	return nil
}

func closeDatabase(db interface{ Close(context.Context) error }, logger *slog.Logger) {
	if err := db.Close(context.Background()); err != nil {
		logger.Error("close database", slog.Any("error", err))
	}
}

type adminCreator interface {
	Register(ctx context.Context, input users.RegisterInput) (users.AuthResult, error)
	ChangeRole(ctx context.Context, actor auth.Identity, userID string, role auth.Role) (users.User, error)
}

func createAdmin(ctx context.Context, svc adminCreator, input users.RegisterInput) (users.User, error) {
	res, err := svc.Register(ctx, input)
	if err != nil {
		return users.User{}, fmt.Errorf("register: %w", err)
	}
	u, err := svc.ChangeRole(ctx, system, res.User.ID, auth.RoleSuperadmin)
	if err != nil {
		return users.User{}, fmt.Errorf("promote %s: %w", res.User.ID, err)
	}
	return u, nil
}

// collectInput prompts on out for every empty field of input. The password
// is taken verbatim apart from the line ending.
func collectInput(in io.Reader, out io.Writer, input users.RegisterInput) (users.RegisterInput, error) {
	r := bufio.NewReader(in)
	prompts := []struct {
		label    string
		field    *string
		verbatim bool
	}{
		{"email address: ", &input.Email, false},
		{"name: ", &input.Name, false},
		{"password: ", &input.Password, true},
	}
	for _, p := range prompts {
		if *p.field != "" {
			continue
		}
		fmt.Fprint(out, p.label)
		line, err := r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return users.RegisterInput{}, fmt.Errorf("read %s: %w", strings.TrimSuffix(p.label, ": "), err)
		}
		if p.verbatim {
			*p.field = strings.TrimRight(line, "\r\n")
		} else {
			*p.field = strings.TrimSpace(line)
		}
	}
	return input, nil
}
