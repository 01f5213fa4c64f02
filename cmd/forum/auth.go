package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	authUsername string
	authPassword string
	authRole     string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a forum account",
	Args:  cobra.NoArgs,
	Run:   register,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the returned identity locally",
	Args:  cobra.NoArgs,
	Run:   login,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored identity",
	Args:  cobra.NoArgs,
	Run:   logout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the stored identity",
	Args:  cobra.NoArgs,
	Run:   whoami,
}

func init() {
	for _, cmd := range []*cobra.Command{registerCmd, loginCmd} {
		cmd.Flags().StringVarP(&authUsername, "username", "u", "", "username")
		cmd.Flags().StringVarP(&authPassword, "password", "p", "", "password")
		_ = cmd.MarkFlagRequired("username")
		_ = cmd.MarkFlagRequired("password")
	}
	registerCmd.Flags().StringVar(&authRole, "role", "", `role label (server default "user")`)

	RootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd)
}

func register(cmd *cobra.Command, args []string) {
	ctx, cancel := withTimeout()
	defer cancel()

	if err := mustAPI().Register(ctx, authUsername, authPassword, authRole); err != nil {
		alertAndExit("Registration failed: %v", err)
	}
	success("Registered %s, now run `forum login`", authUsername)
}

func login(cmd *cobra.Command, args []string) {
	ctx, cancel := withTimeout()
	defer cancel()

	id, err := mustAPI().Login(ctx, authUsername, authPassword)
	if err != nil {
		alertAndExit("Login failed: %v", err)
	}
	if err := mustSessions().Save(id); err != nil {
		alertAndExit("%v", err)
	}
	success("Logged in as %s", color.New(color.Bold).Sprint(id.Username))
}

func logout(cmd *cobra.Command, args []string) {
	if err := mustSessions().Clear(); err != nil {
		alertAndExit("%v", err)
	}
	success("Logged out")
}

func whoami(cmd *cobra.Command, args []string) {
	id, err := mustSessions().Load()
	if err != nil {
		alertAndExit("%v", err)
	}
	fmt.Printf("%s (id %d, role %s)\n", color.New(color.Bold).Sprint(id.Username), id.UserID, id.Role)
}
