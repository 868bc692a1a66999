package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/pkordes/juicebox/backend/internal/schema"
)

func newUpCommand() *cobra.Command {
	flags := newDBFlags()
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Create every missing table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withManager(cmd, flags, func(m *schema.Manager) error {
				n, err := m.CreateAll(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", n)
				return nil
			})
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

func newDownCommand() *cobra.Command {
	flags := newDBFlags()
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Drop every table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withManager(cmd, flags, func(m *schema.Manager) error {
				n, err := m.DropAll(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "rolled back %d migration(s)\n", n)
				return nil
			})
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

func newResetCommand() *cobra.Command {
	flags := newDBFlags()
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop every table and create it again",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withManager(cmd, flags, func(m *schema.Manager) error {
				return m.Reset(cmd.Context())
			})
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

func newStatusCommand() *cobra.Command {
	flags := newDBFlags()
	cmd := &cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withManager(cmd, flags, func(m *schema.Manager) error {
				statuses, err := m.Status(cmd.Context())
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "VERSION\tSTATE\tAPPLIED AT\tFILE")
				for _, s := range statuses {
					state, at := "pending", "-"
					if s.Applied {
						state, at = "applied", s.AppliedAt.Format("2006-01-02 15:04:05")
					}
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.Version, state, at, s.Path)
				}
				return tw.Flush()
			})
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

// withManager opens the database, hands fn a schema.Manager and closes the
// connection afterwards.
func withManager(cmd *cobra.Command, flags map[string]cobraflags.Flag, fn func(*schema.Manager) error) error {
	dsn, err := databaseURL(flags)
	if err != nil {
		return err
	}
	db, err := schema.OpenDB(dsn, "")
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.PingContext(cmd.Context()); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	m, err := schema.NewManager(db)
	if err != nil {
		return err
	}
	return fn(m)
}
