package main

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pdiddy/sheetpub/internal/publish"
	"github.com/pdiddy/sheetpub/internal/secrets"
)

var publishCmd = &cobra.Command{
	Use:   "publish [artifact]",
	Short: "Publish result.json to the static site",
	Long: `Publish copies the JSON artifact into the site directory. With --formats
it also writes a YAML rendition and a SQLite database (table "records")
next to it. With --upload-url it PUTs the JSON to a hosting endpoint,
retrying on 429 and 503 responses. The bearer token comes from
SHEETPUB_PUBLISH_UPLOAD_TOKEN or the file .secrets/upload-token.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		artifact := cfg.Run.Output
		if len(args) == 1 {
			artifact = args[0]
		}

		cfg.Publish.UploadToken = secretDefault(secrets.UploadToken, cfg.Publish.UploadToken)

		p := publish.New(afero.NewOsFs(), cfg.Publish, nil, logger)
		_, err = p.Publish(cmd.Context(), artifact, cmd.OutOrStdout())
		return err
	},
}

func init() {
	publishCmd.Flags().String("site-dir", "public", "static-site directory receiving the artifacts")
	publishCmd.Flags().StringSlice("formats", []string{"json"}, "renditions to publish: json, yaml, sqlite")
	publishCmd.Flags().String("upload-url", "", "URL receiving an HTTP PUT of the JSON artifact")
	publishCmd.Flags().Int("max-retries", 5, "retries on HTTP 429/503 during upload")

	bindFlag(publishCmd, "site-dir", "publish.site_dir")
	bindFlag(publishCmd, "formats", "publish.formats")
	bindFlag(publishCmd, "upload-url", "publish.upload_url")
	bindFlag(publishCmd, "max-retries", "publish.max_retries")

	rootCmd.AddCommand(publishCmd)
}
