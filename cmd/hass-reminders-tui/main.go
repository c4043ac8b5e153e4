// Package main is the entry point for the reminders card.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"hass-reminders-tui/internal/card"
	"hass-reminders-tui/internal/config"
	"hass-reminders-tui/internal/hass"
)

const version = "0.1.0"

const helpText = `hass-reminders-tui - Terminal card for Home Assistant user reminders

USAGE:
    hass-reminders-tui [OPTIONS]

OPTIONS:
    -h, --help      Show this help message
    -v, --version   Show version information
    --init          Create a template config file

CONFIGURATION:
    Config file: ~/.config/hass-reminders-tui/config.yaml

    To get started:
    1. Run 'hass-reminders-tui --init' to create a config template
    2. In Home Assistant, create a long-lived access token
       (profile -> security -> long-lived access tokens)
    3. Add your instance URL and token to the config file
    4. Run 'hass-reminders-tui'

KEYBINDINGS:
    j/k         Move down/up
    Enter       Edit the selected reminder
    a           Add a reminder
    d           Delete the selected reminder
    y           Copy the selected summary to the clipboard
    r           Refresh
    q           Quit

    In the edit dialog:
    Tab         Next field
    Ctrl+S      Save
    Esc         Cancel
`

const configTemplate = `# hass-reminders-tui configuration
# Location: ~/.config/hass-reminders-tui/config.yaml

hass:
  # Your Home Assistant instance URL
  base_url: "http://homeassistant.local:8123"

  # Long-lived access token (profile -> security)
  token: ""

card:
  # Override reminder list auto-detection with a specific entity id.
  # entity_id: "reminders.user_reminders_jane_doe"

  # Person to show reminders for. Optional when the instance has exactly
  # one person entity.
  # user: "Jane Doe"

  # Locale for due date display (BCP 47)
  locale: "en"

  # Tuning: list refresh and registry poll cadence, in seconds
  refresh_seconds: 60
  poll_seconds: 15

ui:
  # Desktop notification when a reminder turns overdue
  notifications: true
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		showHelp    bool
		showVersion bool
		initConfig  bool
	)

	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version")
	flag.BoolVar(&showVersion, "v", false, "Show version (shorthand)")
	flag.BoolVar(&initConfig, "init", false, "Create a template config file")

	flag.Usage = func() {
		fmt.Print(helpText)
	}

	flag.Parse()

	if showHelp {
		fmt.Print(helpText)
		return nil
	}

	if showVersion {
		fmt.Printf("hass-reminders-tui version %s\n", version)
		return nil
	}

	if initConfig {
		return createConfigTemplate()
	}

	return runApp()
}

// createConfigTemplate creates a template configuration file.
func createConfigTemplate() error {
	path, err := config.ConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config file already exists: %s\n", path)
		fmt.Print("Overwrite? [y/N]: ")

		var response string
		fmt.Scanln(&response)

		if response != "y" && response != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if _, err := config.ConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Config file created: %s\n\n", path)
	fmt.Println("Next steps:")
	fmt.Println("  1. Create a long-lived access token in your HA profile")
	fmt.Println("  2. Edit the config file and add base_url and token")
	fmt.Println("  3. Run 'hass-reminders-tui' to start")

	return nil
}

// runApp starts the card.
func runApp() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if !cfg.HasConnection() {
		path, _ := config.ConfigPath()
		fmt.Println("No Home Assistant connection configured.")
		fmt.Println()
		fmt.Println("To get started:")
		fmt.Printf("  1. Run 'hass-reminders-tui --init' to create a config file at:\n     %s\n", path)
		fmt.Println("  2. Add your instance URL and long-lived access token")
		fmt.Println("  3. Run 'hass-reminders-tui' again")
		return nil
	}

	client := hass.NewClient(cfg.Hass.BaseURL, cfg.Hass.Token)

	app := card.New(client, cfg)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}
