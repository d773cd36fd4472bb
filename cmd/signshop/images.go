package main

import (
	"fmt"
	"os"

	"github.com/dimitrije/signshop-api/internal/migration"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newImagesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "images",
		Short: "Plan template image moves between storage buckets",
	}
	cmd.AddCommand(newImagesPlanCmd(a))
	return cmd
}

func newImagesPlanCmd(a *app) *cobra.Command {
	var src, from, to, tool, templatesDir string
	var rewrite, dryRun bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print one copy command per image and optionally repoint thumbnails",
		Long: `Scans --src for images and prints a copy command for each one, uploading
it under --to. Commands go to stdout so the output can be piped to a shell.

With --rewrite, thumbnail values in the template definitions that start with
--from are changed to start with --to instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := migration.ParseTool(tool)
			if err != nil {
				return err
			}

			paths, err := migration.ScanImages(os.DirFS(src))
			if err != nil {
				return err
			}
			plan, err := migration.BuildPlan(src, paths, from, to, t)
			if err != nil {
				return err
			}
			a.logger.Debug("image plan built", zap.String("src", src), zap.Int("images", len(plan.Items)))

			for _, line := range plan.Commands() {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			status := cmd.ErrOrStderr()
			success(status, "%s planned", plural(len(plan.Items), "image", "images"))

			if !rewrite {
				return nil
			}
			if templatesDir == "" {
				templatesDir = a.cfg.TemplatesDir
			}
			report, err := migration.RewriteThumbnails(templatesDir, from, to, dryRun)
			if err != nil {
				return err
			}
			total := 0
			for _, r := range report {
				total += r.Changed
				fmt.Fprintf(status, "  %s %s\n", r.File, dim(plural(r.Changed, "thumbnail", "thumbnails")))
			}
			if dryRun {
				warning(status, "dry run: %s would be rewritten", plural(total, "thumbnail", "thumbnails"))
				return nil
			}
			success(status, "%s rewritten", plural(total, "thumbnail", "thumbnails"))
			return nil
		},
	}
	cmd.Flags().StringVar(&src, "src", "", "Local directory holding the images")
	cmd.Flags().StringVar(&from, "from", "", "Current storage URL prefix")
	cmd.Flags().StringVar(&to, "to", "", "New storage URL prefix")
	cmd.Flags().StringVar(&tool, "tool", string(migration.ToolGsutil), "Copy tool: gsutil or aws")
	cmd.Flags().BoolVar(&rewrite, "rewrite", false, "Rewrite matching thumbnail URLs in template definitions")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "With --rewrite, report changes without writing files")
	cmd.Flags().StringVar(&templatesDir, "templates-dir", "", "Template definitions directory (default $TEMPLATES_DIR)")
	_ = cmd.MarkFlagRequired("src")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
