package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cameronsjo/fabricdocs/internal/archive"
	"github.com/cameronsjo/fabricdocs/internal/config"
	"github.com/cameronsjo/fabricdocs/internal/secrets"
	"github.com/cameronsjo/fabricdocs/internal/ui"
	"github.com/cameronsjo/fabricdocs/internal/webex"
)

const defaultZipName = "artifacts.zip"

type uploadOptions struct {
	artifactsDir string
	zipName      string
	message      string
}

func newUploadCmd(v *viper.Viper) *cobra.Command {
	opts := &uploadOptions{}

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Zip an artifacts directory and send it to a Webex room",
		Long: `Zip every file below --artifacts-dir into --zip-name and post the archive
to a Webex room as a message attachment.

The bot token comes from --token, FABRICDOCS_WEBEX_TOKEN, or the
webex_token key of a SOPS encrypted --secrets file, in that order.

Examples:
  # Send the generated site
  fabricdocs upload --room-id $ROOM --token $TOKEN --artifacts-dir docs

  # Token from an encrypted file, with a message
  fabricdocs upload --room-id $ROOM --secrets secrets.sops.yaml \
    --artifacts-dir docs --message "Fabric docs for $CI_COMMIT_SHORT_SHA"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpload(cmd, v, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.artifactsDir, "artifacts-dir", "", "directory containing artifacts to zip")
	flags.StringVar(&opts.zipName, "zip-name", defaultZipName, "name of the zip file to create")
	flags.StringVar(&opts.message, "message", "", "optional message text to send with the file")
	flags.String("room-id", "", "Webex room id")
	flags.String("token", "", "Webex bot access token")
	flags.String("secrets", "", "SOPS encrypted file with a webex_token key")
	_ = cmd.MarkFlagRequired("artifacts-dir")

	bindFlag(v, config.KeyWebexRoomID, flags.Lookup("room-id"))
	bindFlag(v, config.KeyWebexToken, flags.Lookup("token"))
	bindFlag(v, config.KeyWebexSecretsFile, flags.Lookup("secrets"))

	_ = cmd.RegisterFlagCompletionFunc("artifacts-dir", completeDirectories)
	_ = cmd.RegisterFlagCompletionFunc("secrets", completeSecretsFiles)

	return cmd
}

func runUpload(cmd *cobra.Command, v *viper.Viper, opts *uploadOptions) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	if cfg.Webex.RoomID == "" {
		return errors.New("webex room id is required (--room-id or FABRICDOCS_WEBEX_ROOM_ID)")
	}

	token, err := resolveToken(cfg.Webex)
	if err != nil {
		return err
	}

	n, err := archive.ZipDir(opts.artifactsDir, opts.zipName)
	if err != nil {
		return fmt.Errorf("zip artifacts: %w", err)
	}
	ui.Archive("Created %s (%d files)", opts.zipName, n)

	client := webex.NewClient(webex.Config{Token: token, BaseURL: cfg.Webex.BaseURL})
	sent, err := client.SendFile(cmd.Context(), webex.Message{
		RoomID:   cfg.Webex.RoomID,
		Text:     opts.message,
		FilePath: opts.zipName,
	})
	if err != nil {
		var apiErr *webex.APIError
		if errors.As(err, &apiErr) {
			ui.Error("Failed to send file: %d %s", apiErr.StatusCode, apiErr.Body)
		}
		return fmt.Errorf("send file: %w", err)
	}

	ui.Send("Sent %s to room %s", opts.zipName, cfg.Webex.RoomID)
	if sent.ID != "" {
		fmt.Fprintln(cmd.OutOrStdout(), sent.ID)
	}
	return nil
}

// resolveToken prefers an explicit token over the encrypted secrets file.
func resolveToken(w config.Webex) (string, error) {
	if w.Token != "" {
		return w.Token, nil
	}
	if w.SecretsFile != "" {
		token, err := secrets.WebexToken(w.SecretsFile)
		if err != nil {
			return "", fmt.Errorf("read webex token: %w", err)
		}
		return token, nil
	}
	return "", errors.New("webex token is required (--token, FABRICDOCS_WEBEX_TOKEN or --secrets)")
}
