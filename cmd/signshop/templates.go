package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dimitrije/signshop-api/internal/catalog"
	"github.com/dimitrije/signshop-api/pkg/dto"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newTemplatesCmd(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Inspect the template catalog on disk",
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "", "Template definitions directory (default $TEMPLATES_DIR)")

	load := func() (*catalog.Catalog, error) {
		if dir == "" {
			dir = a.cfg.TemplatesDir
		}
		a.logger.Debug("loading template catalog", zap.String("dir", dir))
		return catalog.LoadDir(dir)
	}

	cmd.AddCommand(
		newTemplatesListCmd(load),
		newTemplatesCategoriesCmd(load),
		newTemplatesShowCmd(load),
		newTemplatesValidateCmd(load),
	)
	return cmd
}

type catalogLoader func() (*catalog.Catalog, error)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func categoryLabel(c catalog.Category) string {
	if c.Sub == "" {
		return c.Main
	}
	return c.Main + " / " + c.Sub
}

func newTemplatesListCmd(load catalogLoader) *cobra.Command {
	var category, subCategory, query string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List templates, filtered the same way as the browse grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := load()
			if err != nil {
				return err
			}

			browse := catalog.NewBrowse(category, subCategory, query)
			templates := browse.Apply(c)
			out := cmd.OutOrStdout()

			if asJSON {
				summaries := make([]dto.TemplateSummary, len(templates))
				for i, t := range templates {
					summaries[i] = dto.NewTemplateSummary(t)
				}
				return writeJSON(out, summaries)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tSIZE")
			for _, t := range templates {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%gx%g\n", t.ID, t.Name, categoryLabel(t.Category), t.Width, t.Height)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintln(out, dim(fmt.Sprintf("%s (%s)", plural(len(templates), "template", "templates"), browse.Mode())))
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Main category")
	cmd.Flags().StringVar(&subCategory, "subcategory", "", "Sub category within --category")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Search name, description and tags (overrides category filters)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newTemplatesCategoriesCmd(load catalogLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Print the category tree in catalog order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, main := range c.MainCategories() {
				heading(out, "%s", main)
				for _, sub := range c.SubCategories(main) {
					fmt.Fprintf(out, "  %s\n", sub)
				}
			}
			return nil
		},
	}
}

func newTemplatesShowCmd(load catalogLoader) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one template, including its document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := load()
			if err != nil {
				return err
			}
			t, err := c.ByID(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, dto.NewTemplateDetail(t))
			}

			heading(out, "%s", t.Name)
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "id\t%s\n", t.ID)
			fmt.Fprintf(tw, "category\t%s\n", categoryLabel(t.Category))
			fmt.Fprintf(tw, "size\t%gx%g\n", t.Width, t.Height)
			if t.Thumbnail != "" {
				fmt.Fprintf(tw, "thumbnail\t%s\n", t.Thumbnail)
			}
			if t.Description != "" {
				fmt.Fprintf(tw, "description\t%s\n", t.Description)
			}
			if len(t.Tags) > 0 {
				fmt.Fprintf(tw, "tags\t%v\n", t.Tags)
			}
			fmt.Fprintf(tw, "document\t%d bytes\n", len(t.Document))
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newTemplatesValidateCmd(load catalogLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load every definition and report problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, t := range c.All() {
				if t.Thumbnail == "" {
					warning(out, "%s has no thumbnail", t.ID)
				}
			}
			success(out, "%s in %s", plural(c.Len(), "template", "templates"), plural(len(c.MainCategories()), "category", "categories"))
			return nil
		},
	}
}
