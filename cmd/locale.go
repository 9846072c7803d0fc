// =============================================================================
// Graduate Roster - Locale Command
// =============================================================================
//
// COMMAND USAGE:
//   roster locale get         Print the active locale
//   roster locale set <code>  Remember a locale (ka, en or ru)
//   roster locale list        List supported locales
//
// The choice is stored in locale.store_file and wins over the environment
// language on later runs.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/graduate-roster/internal/i18n"
)

var localeCmd = &cobra.Command{
	Use:   "locale",
	Short: "Show or change the remembered language",
}

var localeGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the active locale",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(appConfig)
		if err != nil {
			return err
		}
		session, err := openSession(appConfig, cat)
		if err != nil {
			return err
		}
		defer session.Close()

		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", session.Locale(), session.T("locale.name"))
		return nil
	},
}

var localeSetCmd = &cobra.Command{
	Use:   "set <code>",
	Short: "Remember a locale",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, ok := i18n.ParseLocale(args[0])
		if !ok {
			return fmt.Errorf("unsupported locale %q (want one of ka, en, ru)", args[0])
		}

		cat, err := loadCatalog(appConfig)
		if err != nil {
			return err
		}
		session, err := openSession(appConfig, cat)
		if err != nil {
			return err
		}
		defer session.Close()

		if err := session.SetLocale(l); err != nil {
			return err
		}
		logger.Debug("Locale saved",
			zap.String("locale", l.String()),
			zap.String("file", appConfig.Locale.StoreFile),
		)

		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", session.Locale(), session.T("locale.name"))
		return nil
	},
}

var localeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported locales",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(appConfig)
		if err != nil {
			return err
		}
		for _, l := range i18n.Supported {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", l, cat.Localizer(l).T("locale.name"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(localeCmd)
	localeCmd.AddCommand(localeGetCmd, localeSetCmd, localeListCmd)
}
