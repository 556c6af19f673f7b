package main

import (
	"os"

	"github.com/spf13/cobra"

	"steamdex/pkg/keys"
	"steamdex/pkg/ui"
)

// keyCmd represents the key command
var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the stored Steam Web API key",
	Long: `Manage the Steam Web API key.

The key is stored in the system keychain when one is available, with an
encrypted file as fallback. The STEAM_API_KEY environment variable is
always honored and takes effect without storing anything.

Get a key at https://steamcommunity.com/dev/apikey`,
}

// keySetCmd represents the key set command
var keySetCmd = &cobra.Command{
	Use:   "set [key]",
	Short: "Store the API key",
	Long: `Store the Steam Web API key. Without an argument the key is read
from the terminal without echoing it.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runKeySet,
}

// keyShowCmd represents the key show command
var keyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored API key (masked)",
	Run:   runKeyShow,
}

// keyRemoveCmd represents the key remove command
var keyRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove the stored API key",
	Run:   runKeyRemove,
}

func init() {
	rootCmd.AddCommand(keyCmd)
	keyCmd.AddCommand(keySetCmd)
	keyCmd.AddCommand(keyShowCmd)
	keyCmd.AddCommand(keyRemoveCmd)
}

func keyManager() *keys.Manager {
	manager, err := keys.NewManager()
	if err != nil {
		ui.PrintError("Failed to set up key storage", err.Error())
		os.Exit(1)
	}
	return manager
}

func runKeySet(cmd *cobra.Command, args []string) {
	var key string
	if len(args) == 1 {
		key = args[0]
	} else {
		var err error
		key, err = ui.ReadSecret("Steam Web API key: ")
		if err != nil {
			ui.PrintError("Failed to read key", err.Error())
			os.Exit(1)
		}
	}
	if key == "" {
		ui.PrintError("Empty key")
		os.Exit(1)
	}

	if err := keyManager().Set(key); err != nil {
		ui.PrintError("Failed to store key", err.Error())
		os.Exit(1)
	}
	ui.PrintSuccess("API key stored")
}

func runKeyShow(cmd *cobra.Command, args []string) {
	manager := keyManager()
	key, err := manager.Get()
	if err != nil {
		ui.PrintWarning("No API key stored")
		os.Exit(1)
	}

	source, _ := manager.Source()
	ui.PrintInfo("API key", keys.Mask(key))
	ui.PrintInfo("Source", source)
}

func runKeyRemove(cmd *cobra.Command, args []string) {
	if err := keyManager().Delete(); err != nil {
		ui.PrintError("Failed to remove key", err.Error())
		os.Exit(1)
	}
	ui.PrintSuccess("API key removed")
}
