package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"reflectdoc/internal/reflection"
	"reflectdoc/internal/storage"
)

var (
	scanDB   string
	scanJSON string
)

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Scan the TypeScript sources and store a reflection snapshot",
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

		fmt.Printf("📂 Scanning directory: %s\n", p.sourceRoot())
		start := time.Now()
		idx, err := p.indexer()
		if err != nil {
			return err
		}
		tree, err := idx.BuildTree(p.sourceRoot(), p.meta.Name)
		if err != nil {
			return err
		}
		nodes := 0
		tree.Walk(func(*reflection.Node) { nodes++ })
		fmt.Printf("✅ Found %d declarations (%d nodes) in %v.\n", len(tree.Children), nodes, time.Since(start).Round(time.Millisecond))

		db := scanDB
		if db == "" {
			db = p.cfg.Resolve(p.cfg.Reflection.DB)
		}
		store, err := storage.NewSQLiteStore(db)
		if err != nil {
			return err
		}
		defer store.Close()

		fmt.Println("💾 Saving snapshot...")
		id, err := store.SaveSnapshot(ctx, p.meta.Name, tree)
		if err != nil {
			return err
		}
		fmt.Printf("  🗄️  %s (snapshot %d)\n", db, id)

		out := scanJSON
		if out == "" && p.cfg.Reflection.JSON != "" {
			out = p.cfg.Resolve(p.cfg.Reflection.JSON)
		}
		if out != "" {
			if err := idx.SaveTree(tree, out); err != nil {
				return err
			}
			fmt.Printf("  📄 %s\n", out)
		}
		fmt.Println("🎉 Scan complete!")
		return nil
	},
}

func init() {
	scanCmd.Flags().StringVarP(&scanDB, "db", "d", "", "Snapshot database (default from the project file)")
	scanCmd.Flags().StringVar(&scanJSON, "json", "", "Also write the tree as a JSON snapshot")
}
