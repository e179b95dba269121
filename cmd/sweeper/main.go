// Command sweeper purges trash entries past the retention window. It is
// intended to run from cron on the wiki host; configuration comes from the
// environment (.env supported) with flags taking precedence.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"docwiki"
	"docwiki/internal/logging/gologger"
)

func main() {
	cfg := docwiki.ConfigFromEnv()

	dataDir := pflag.String("data-dir", cfg.DataDir, "root directory holding docs/ and trash/")
	days := pflag.Int("days", cfg.Retention.MaxAgeDays, "remove trash entries at or beyond this age in days")
	dryRun := pflag.Bool("dry-run", false, "list entries that would be removed without touching them")
	logLevel := pflag.String("log-level", cfg.Logging.Level, "log level (trace..fatal)")
	pflag.Parse()

	cfg.DataDir = *dataDir
	cfg.Retention.MaxAgeDays = *days
	cfg.Logging.Level = *logLevel

	provider, err := gologger.NewProvider(gologger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "sweeper:", err)
		os.Exit(1)
	}
	log := provider.GetLogger("docwiki.sweeper")

	module, err := docwiki.New(cfg, docwiki.WithLoggerProvider(provider))
	if err != nil {
		log.Error("sweeper.init_failed", "error", err)
		os.Exit(1)
	}

	if *dryRun {
		entries, err := module.Trash().Entries()
		if err != nil {
			log.Error("sweeper.list_failed", "error", err)
			os.Exit(1)
		}
		for _, entry := range entries {
			fmt.Printf("%s\t%s\n", entry.Name, entry.DeletedAt.Format("2006-01-02 15:04:05"))
		}
		return
	}

	removed, err := module.Sweep()
	if err != nil {
		log.Error("sweeper.sweep_failed", "error", err)
		os.Exit(1)
	}
	for _, name := range removed {
		fmt.Println(name)
	}
	log.Info("sweeper.done", "removed", len(removed), "max_age_days", cfg.Retention.MaxAgeDays)
}
