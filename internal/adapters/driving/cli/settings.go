package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/madrasa-labs/bahith-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the role, session, academic year, and backend URL.

The role decides which categories a search may touch. The academic year
scopes most lookups and is usually changed at the start of a school year.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsRoleCmd = &cobra.Command{
	Use:   "role [role]",
	Short: "Set the user role",
	Long: `Set the role that scopes every search.

Available roles:
  director            - full visibility including director notes
  admin               - full visibility except director notes
  finance             - students, academic years, finance, pages
  morning_supervisor  - morning session entities
  evening_supervisor  - evening session entities
  registrar           - students, academic years, classes, pages`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsRole,
}

var settingsSessionCmd = &cobra.Command{
	Use:   "session [morning|evening]",
	Short: "Set the session affiliation",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsSession,
}

var settingsYearCmd = &cobra.Command{
	Use:   "year [id]",
	Short: "Set the selected academic year",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsYear,
}

var settingsURLCmd = &cobra.Command{
	Use:   "url [base-url]",
	Short: "Set the backend base URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsURL,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsRoleCmd)
	settingsCmd.AddCommand(settingsSessionCmd)
	settingsCmd.AddCommand(settingsYearCmd)
	settingsCmd.AddCommand(settingsURLCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings := settingsService.Current()

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()
	cmd.Printf("  Role:          %s\n", orUnset(string(settings.Role)))
	cmd.Printf("  Session:       %s\n", orUnset(string(settings.Session)))
	if settings.AcademicYearID > 0 {
		cmd.Printf("  Academic year: %d\n", settings.AcademicYearID)
	} else {
		cmd.Printf("  Academic year: (not set)\n")
	}
	cmd.Printf("  Backend URL:   %s\n", settings.BaseURL)
	cmd.Println()

	scopes := domain.AllowedScopes(settings.Role)
	if len(scopes) == 0 {
		cmd.Println("Warning: the configured role permits no searches.")
		cmd.Println("Run 'bahith settings role' to set a valid role.")
		return nil
	}

	cmd.Println("Permitted scopes:")
	for _, s := range scopes {
		cmd.Printf("  - %s (%s)\n", s, s.Label())
	}

	return nil
}

func runSettingsRole(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	role := domain.Role(args[0])
	if err := settingsService.SetRole(role); err != nil {
		return fmt.Errorf("failed to set role: %w", err)
	}

	cmd.Printf("Role set to: %s\n", role)
	return nil
}

func runSettingsSession(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	session := domain.SessionType(args[0])
	if err := settingsService.SetSession(session); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}

	cmd.Printf("Session set to: %s\n", session)
	return nil
}

func runSettingsYear(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid academic year id %q", args[0])
	}
	if err := settingsService.SetAcademicYear(id); err != nil {
		return fmt.Errorf("failed to set academic year: %w", err)
	}

	cmd.Printf("Academic year set to: %d\n", id)
	return nil
}

func runSettingsURL(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.SetBaseURL(args[0]); err != nil {
		return fmt.Errorf("failed to set backend url: %w", err)
	}

	cmd.Printf("Backend URL set to: %s\n", args[0])
	return nil
}

func orUnset(value string) string {
	if value == "" {
		return "(not set)"
	}
	return value
}
