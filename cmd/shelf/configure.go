package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Write a config file interactively",
	Long: `Create a shelf configuration file interactively.

You will be prompted for:
  - Directory to serve
  - HTTP port
  - Directory index filename
  - Whether to serve precompressed variants
  - Log level

The result is written as YAML to the output path (default: ./config.yaml).`,
	RunE: runConfigure,
}

var configureOutput string

func init() {
	configureCmd.Flags().StringVarP(&configureOutput, "output", "o", "config.yaml", "output file path")

	rootCmd.AddCommand(configureCmd)
}

// configFile mirrors config.Config with yaml tags for writing. The
// config package reads with mapstructure tags, so the struct there
// cannot be marshalled directly.
type configFile struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Static struct {
		Root          string `yaml:"root"`
		Index         string `yaml:"index"`
		Precompressed bool   `yaml:"precompressed"`
	} `yaml:"static"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func runConfigure(_ *cobra.Command, _ []string) error {
	if _, err := os.Stat(configureOutput); err == nil {
		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("%s already exists. Overwrite it", configureOutput),
			IsConfirm: true,
		}
		if _, promptErr := prompt.Run(); promptErr != nil {
			fmt.Println("Cancelled.")
			return nil //nolint:nilerr // User cancelled, not an error
		}
	}

	var cfg configFile

	rootPrompt := promptui.Prompt{
		Label:   "Directory to serve",
		Default: "./public",
		Validate: func(input string) error {
			if input == "" {
				return errors.New("directory is required")
			}
			return nil
		},
	}
	root, err := rootPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}
	cfg.Static.Root = root

	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: "3000",
		Validate: func(input string) error {
			p, parseErr := strconv.Atoi(input)
			if parseErr != nil {
				return errors.New("port must be a number")
			}
			if p < 1 || p > 65535 {
				return errors.New("port must be between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	indexPrompt := promptui.Prompt{
		Label:   "Directory index filename",
		Default: "index.html",
		Validate: func(input string) error {
			if input == "" {
				return errors.New("index filename is required")
			}
			return nil
		},
	}
	index, err := indexPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}
	cfg.Static.Index = index

	precompressedPrompt := promptui.Prompt{
		Label:     "Serve precompressed variants",
		IsConfirm: true,
	}
	if _, promptErr := precompressedPrompt.Run(); promptErr == nil {
		cfg.Static.Precompressed = true
	}

	levelPrompt := promptui.Select{
		Label: "Log level",
		Items: []string{"debug", "info", "warn", "error"},
	}
	_, level, err := levelPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}
	cfg.Log.Level = level

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(configureOutput, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Printf("Wrote %s.\n", configureOutput)
	fmt.Printf("Start serving with: shelf serve --config %s\n", configureOutput)
	return nil
}

// handlePromptError handles promptui errors.
func handlePromptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) {
		fmt.Println("\nCancelled.")
		os.Exit(0)
	}
	if errors.Is(err, promptui.ErrAbort) {
		fmt.Println("Cancelled.")
		return nil
	}
	return err
}
