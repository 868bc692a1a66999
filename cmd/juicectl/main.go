// Command juicectl manages the Juicebox database: it creates and drops the
// schema and loads the demo data set.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const databaseURLFlag = "database-url"

// newDBFlags returns a fresh flag set for one subcommand.
func newDBFlags() map[string]cobraflags.Flag {
	return map[string]cobraflags.Flag{
		databaseURLFlag: &cobraflags.StringFlag{
			Name:  databaseURLFlag,
			Value: "",
			Usage: "Postgres connection string (defaults to $DATABASE_URL)",
		},
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "juicectl",
		Short: "Manage the Juicebox database",
		Long: `Manage the Juicebox database schema and demo data.

Examples:
  juicectl up                 # create users, posts, tags and post_tags
  juicectl reset              # drop every table and create it again
  juicectl seed               # load the demo users, posts and tags
  juicectl status --database-url postgres://localhost/juicebox`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newResetCommand(),
		newStatusCommand(),
		newSeedCommand(),
	)
	return rootCmd
}

// databaseURL resolves the connection string: the flag wins over the environment.
func databaseURL(flags map[string]cobraflags.Flag) (string, error) {
	if dsn := flags[databaseURLFlag].GetString(); dsn != "" {
		return dsn, nil
	}
	env := viper.New()
	env.AutomaticEnv()
	if dsn := env.GetString("DATABASE_URL"); dsn != "" {
		return dsn, nil
	}
	return "", fmt.Errorf("no database: set --%s or DATABASE_URL", databaseURLFlag)
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
