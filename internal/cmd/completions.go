package cmd

import (
	"github.com/spf13/cobra"
)

// secretsExtensions are the SOPS file types the upload command can read.
var secretsExtensions = []string{"yaml", "yml", "json"}

// completeDirectories completes a single directory argument.
func completeDirectories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	// Don't complete if we already have an argument
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveFilterDirs
}

// completeSecretsFiles completes encrypted secrets files by extension.
func completeSecretsFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return secretsExtensions, cobra.ShellCompDirectiveFilterFileExt
}
