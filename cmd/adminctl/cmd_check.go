package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"thirdcoast.systems/adminkit/internal/config"
	"thirdcoast.systems/adminkit/pkg/utils/passwords"
)

// newCheckConfigCmd creates the check-config subcommand.
func newCheckConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check-config",
		Short: "Load and validate the service environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.LoadConfig(cmd.Context())
			if err != nil {
				return err
			}
			hash, err := passwords.Parse(conf.AdminPasswordHash)
			if err != nil {
				return err
			}
			p, err := hash.Params()
			if err != nil {
				return err
			}
			if conf.SessionSecret == "" {
				slog.Warn("SESSION_SECRET is empty; sessions will not survive a restart")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "port:           %d\n", conf.WebServerPort)
			fmt.Fprintf(out, "admin user:     %s\n", conf.AdminUsername)
			fmt.Fprintf(out, "admin host:     %s\n", orAny(conf.AdminHost))
			fmt.Fprintf(out, "allowed IPs:    %s\n", orAny(conf.AdminAllowOnly))
			proxies := conf.TrustedProxies
			if proxies == "" {
				proxies = "(none)"
			}
			fmt.Fprintf(out, "trusted proxies: %s\n", proxies)
			fmt.Fprintf(out, "feedback delay: %s\n", conf.FeedbackDelay())
			fmt.Fprintf(out, "argon2id:       m=%d t=%d p=%d\n", p.Memory, p.Iterations, p.Parallelism)
			fmt.Fprintln(out, "ok")
			return nil
		},
	}
	return cmd
}

func orAny(v string) string {
	if v == "" {
		return "(any)"
	}
	return v
}
