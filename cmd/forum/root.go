package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"foro-tematico/pkg/client"
)

var (
	serverURL  string
	sessionDir string
	timeout    time.Duration
)

var RootCmd = &cobra.Command{
	Use:           "forum",
	Short:         "Terminal client for the foro-tematico forum",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	defaultServer := os.Getenv("FORO_SERVER")
	if defaultServer == "" {
		defaultServer = client.DefaultServer
	}
	RootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServer, "forum API base URL")
	RootCmd.PersistentFlags().StringVar(&sessionDir, "home", "", "directory holding the stored identity (default $FORO_HOME or ~/.foro-tematico)")
	RootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")
}

func mustAPI() *client.API {
	api, err := client.NewAPI(serverURL)
	if err != nil {
		alertAndExit("%v", err)
	}
	return api
}

func mustSessions() *client.SessionStore {
	dir := sessionDir
	if dir == "" {
		var err error
		if dir, err = client.DefaultSessionDir(); err != nil {
			alertAndExit("%v", err)
		}
	}
	return client.NewSessionStore(dir)
}

// mustView 挂载视图；没有本地身份时提示先登录
func mustView(ctx context.Context) *client.View {
	v := client.NewView(mustAPI(), mustSessions())
	if err := v.Mount(ctx); err != nil {
		if errors.Is(err, client.ErrNotLoggedIn) {
			alertAndExit("not logged in, run `forum login` first")
		}
		alertAndExit("Failed to fetch posts: %v", err)
	}
	return v
}

func withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// alertAndExit 所有失败都以阻断式提示结束，不重试
func alertAndExit(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, color.New(color.FgHiRed, color.Bold).Sprint("🚨 "+fmt.Sprintf(format, args...)))
	os.Exit(1)
}

func success(format string, args ...interface{}) {
	fmt.Println(color.New(color.FgHiGreen, color.Bold).Sprint("✅ " + fmt.Sprintf(format, args...)))
}
