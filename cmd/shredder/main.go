package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/depot/shredder/internal/build"
	"github.com/depot/shredder/pkg/ci"
	"github.com/depot/shredder/pkg/cmd/root"
	"github.com/getsentry/sentry-go"
	"github.com/mgutz/ansi"
)

func main() {
	code := runMain()
	os.Exit(code)
}

func runMain() int {
	telemetry := telemetryEnabled()
	if telemetry {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         os.Getenv("SHREDDER_SENTRY_DSN"),
			Environment: sentryEnvironment(),
			Release:     build.Version,
		})
		if err != nil {
			log.Fatalf("sentry.Init: %s", err)
		}
		if provider, ok := ci.Provider(); ok {
			sentry.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("ci", provider)
			})
		}
		defer sentry.Flush(2 * time.Second)
	}

	rootCmd := root.NewCmdRoot(build.Version, build.Date)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ansi.Color(err.Error(), "red"))
		if telemetry {
			sentry.CaptureException(err)
		}
		return 1
	}

	return 0
}

func telemetryEnabled() bool {
	return os.Getenv("SHREDDER_SENTRY_DSN") != "" && os.Getenv("SHREDDER_ERROR_TELEMETRY") != "0"
}

func sentryEnvironment() string {
	if build.Version == "dev" {
		return "development"
	}
	return "production"
}
