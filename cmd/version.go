package cmd

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

const repositorySlug = "s0up4200/nestoria"

var (
	buildVersion = "dev"
	buildDate    = "unknown"
	checkLatest  bool
)

// SetVersion records build information injected at link time
func SetVersion(version, date string) {
	buildVersion = version
	buildDate = date
	rootCmd.Version = version
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// no config or client needed
	PersistentPreRunE:  func(cmd *cobra.Command, args []string) error { return nil },
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE:               runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolVar(&checkLatest, "check", false, "check GitHub for a newer release")
}

func runVersion(cmd *cobra.Command, args []string) error {
	fmt.Printf("nestoria %s (built %s, %s/%s)\n", buildVersion, buildDate, runtime.GOOS, runtime.GOARCH)

	if !checkLatest {
		return nil
	}

	current, err := semver.ParseTolerant(buildVersion)
	if err != nil {
		return fmt.Errorf("cannot compare development build %q: %w", buildVersion, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repositorySlug))
	if err != nil {
		return fmt.Errorf("failed to detect latest release: %w", err)
	}
	if !found {
		fmt.Println("No releases found.")
		return nil
	}

	if newerRelease(current, latest.Version()) {
		fmt.Printf("A newer version is available: %s\n%s\n", latest.Version(), latest.URL)
		return nil
	}
	fmt.Println("✓ You are running the latest version.")
	return nil
}

// newerRelease reports whether the release version is ahead of current
func newerRelease(current semver.Version, release string) bool {
	v, err := semver.ParseTolerant(release)
	if err != nil {
		return false
	}
	return v.GT(current)
}
