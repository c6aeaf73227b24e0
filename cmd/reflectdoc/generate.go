package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"reflectdoc/internal/config"
)

var (
	templateDir string
	reportPath  string
)

var generateCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Regenerate the configured documentation files",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}

		p, err := loadProject(dir)
		if err != nil {
			return err
		}
		if templateDir != "" {
			abs, err := filepath.Abs(templateDir)
			if err != nil {
				return err
			}
			p.cfg.Theme = abs
			p.cfg.Target = config.TargetWebsite
		}
		if len(p.cfg.Files) == 0 {
			fmt.Println("✅ Nothing to generate: no files configured.")
			return nil
		}

		fmt.Printf("🚀 Generating %d files for %s...\n", len(p.cfg.Files), p.meta.Name)
		start := time.Now()
		g, err := p.generator(ctx)
		if err != nil {
			return err
		}
		res, err := g.Generate(ctx)
		if reportPath != "" && res != nil {
			if saveErr := res.Report.Save(reportPath); saveErr != nil {
				fmt.Printf("⚠️  Failed to save report: %v\n", saveErr)
			} else {
				fmt.Printf("📊 Report written to %s\n", reportPath)
			}
		}
		if err != nil {
			return err
		}

		for _, path := range res.Written {
			fmt.Printf("  📄 %s\n", path)
		}
		for _, f := range res.Failed {
			fmt.Printf("  ⚠️  %s: %v\n", f.Path, f.Err)
		}
		if len(res.Failed) > 0 {
			return errors.Newf("%d of %d files failed", len(res.Failed), len(p.cfg.Files))
		}
		fmt.Printf("🎉 Done in %v: %s\n", time.Since(start).Round(time.Millisecond), res.Summary())
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&templateDir, "template", "t", "", "Theme directory; implies the website target")
	generateCmd.Flags().StringVar(&reportPath, "report", "", "Write a JSON run report to this path")
}
