package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"showroom-service/internal/domain/auth"
	xerrors "showroom-service/internal/pkg/errors"
	"showroom-service/internal/repository/postgres"
	authUsecase "showroom-service/internal/service/auth"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

var (
	newUsername string
	newEmail    string
	newRole     string
)

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create an administrator account",
	Long: `Create a user who can sign in to the admin interface. Missing values are
prompted for; the password is always read from the terminal without echo.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		in := bufio.NewReader(cmd.InOrStdin())
		out := cmd.OutOrStdout()

		req, err := promptUser(in, out)
		if err != nil {
			return err
		}

		pool, err := connect(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		svc := authUsecase.NewAuthService(postgres.NewUserRepository(pool), nil, nil, newLogger())
		user, err := svc.CreateUser(ctx, req)
		if errors.Is(err, xerrors.ErrDuplicateEntry) {
			fmt.Fprintf(out, "✅ User '%s' already exists!\n", req.Username)
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "✅ User '%s' created successfully!\n", user.Username)
		fmt.Fprintf(out, "   User ID: %d\n", user.ID)
		return nil
	},
}

func init() {
	createUserCmd.Flags().StringVarP(&newUsername, "username", "u", "", "Username")
	createUserCmd.Flags().StringVarP(&newEmail, "email", "e", "", "Email address")
	createUserCmd.Flags().StringVar(&newRole, "role", "admin", "Role")
}

func promptUser(in *bufio.Reader, out io.Writer) (*auth.CreateUserRequest, error) {
	username := newUsername
	if username == "" {
		v, err := prompt(in, out, "Username")
		if err != nil {
			return nil, err
		}
		username = v
	}

	email := newEmail
	if email == "" {
		v, err := prompt(in, out, "Email (optional)")
		if err != nil {
			return nil, err
		}
		email = v
	}

	fmt.Fprint(out, "Password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Fprint(out, "Confirm password: ")
	confirm, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if string(pw) != string(confirm) {
		return nil, errors.New("passwords do not match")
	}

	return &auth.CreateUserRequest{
		Username: username,
		Password: string(pw),
		Email:    email,
		Role:     newRole,
	}, nil
}

func prompt(in *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprintf(out, "%s: ", label)
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
