package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/retshidi-radebe/bzfitness/internal/model"
	"github.com/retshidi-radebe/bzfitness/internal/service"
	"github.com/retshidi-radebe/bzfitness/internal/store"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin users",
		Long:  "Create, list and delete the staff accounts that sign in to the admin dashboard.",
	}

	cmd.AddCommand(newAdminCreateCmd())
	cmd.AddCommand(newAdminListCmd())
	cmd.AddCommand(newAdminDeleteCmd())
	cmd.AddCommand(newAdminHashPasswordCmd())

	return cmd
}

// ---------- admin create ----------

func newAdminCreateCmd() *cobra.Command {
	var (
		username string
		password string
		role     string
		name     string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new admin user",
		Example: `  bzfitness admin create --username thabo --role admin --password secret
  bzfitness admin create --username owner --role superadmin  # prompts for password`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				pw, err := readPassword(cmd, true)
				if err != nil {
					return err
				}
				password = pw
			}
			return runAdminCreate(cmd, username, password, model.Role(role), name)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Login name (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted if omitted)")
	cmd.Flags().StringVar(&role, "role", string(model.RoleAdmin), "Role: admin or superadmin")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.MarkFlagRequired("username")

	return cmd
}

func runAdminCreate(cmd *cobra.Command, username, password string, role model.Role, name string) error {
	if username == "" || password == "" {
		return fmt.Errorf("username and password are required")
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	st, err := openStore(settings)
	if err != nil {
		return err
	}
	defer st.Close()

	in := service.NewUser{Username: username, Password: password, Role: role}
	if name != "" {
		in.Name = &name
	}
	u, err := service.NewAuthService(st, settings.Auth).CreateUser(context.Background(), in)
	switch {
	case errors.Is(err, service.ErrInvalidRole):
		return fmt.Errorf("invalid role %q (use admin or superadmin)", role)
	case errors.Is(err, store.ErrConflict):
		return fmt.Errorf("username %q already exists", username)
	case err != nil:
		return fmt.Errorf("create admin: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s %q (id %s)\n", u.Role, u.Username, u.ID)
	return nil
}

// ---------- admin list ----------

func newAdminListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored admin users",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdminList(cmd, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func runAdminList(cmd *cobra.Command, jsonOutput bool) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	st, err := openStore(settings)
	if err != nil {
		return err
	}
	defer st.Close()

	admins, err := st.ListAdminUsers(context.Background())
	if err != nil {
		return fmt.Errorf("list admins: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(admins)
	}

	if len(admins) == 0 {
		fmt.Fprintln(out, "No admin users stored. Use 'bzfitness admin create' to create one.")
		return nil
	}

	fmt.Fprintf(out, "%-36s %-20s %-11s %-24s\n", "ID", "USERNAME", "ROLE", "NAME")
	fmt.Fprintf(out, "%-36s %-20s %-11s %-24s\n", "--", "--------", "----", "----")
	for _, a := range admins {
		name := ""
		if a.Name != nil {
			name = *a.Name
		}
		fmt.Fprintf(out, "%-36s %-20s %-11s %-24s\n", a.ID, a.Username, a.Role, name)
	}
	return nil
}

// ---------- admin delete ----------

func newAdminDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id|username>",
		Aliases: []string{"rm"},
		Short:   "Delete a stored admin user",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			st, err := openStore(settings)
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := context.Background()
			id := args[0]
			if u, err := st.GetAdminUserByUsername(ctx, id); err == nil {
				id = u.ID
			}

			err = service.NewAuthService(st, settings.Auth).DeleteUser(ctx, nil, id)
			switch {
			case errors.Is(err, service.ErrUserProtected):
				return fmt.Errorf("the environment superadmin is configured, not stored, and cannot be deleted")
			case errors.Is(err, store.ErrNotFound):
				return fmt.Errorf("no admin user %q", args[0])
			case err != nil:
				return fmt.Errorf("delete admin: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted admin user %q\n", args[0])
			return nil
		},
	}
}

// ---------- admin hash-password ----------

func newAdminHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password",
		Short: "Print the ADMIN_PASSWORD_HASH value for a password",
		Long: `Read a password (prompted on a terminal, otherwise one line from stdin) and
print the digest to use as auth.admin_password_hash or ADMIN_PASSWORD_HASH.`,
		Example: `  bzfitness admin hash-password
  echo -n secret | bzfitness admin hash-password`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := readPassword(cmd, true)
			if err != nil {
				return err
			}
			if pw == "" {
				return fmt.Errorf("password must not be empty")
			}
			fmt.Fprintln(cmd.OutOrStdout(), service.HashPassword(pw))
			return nil
		},
	}
}
