package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"reflectdoc/internal/config"
	"reflectdoc/internal/content"
	"reflectdoc/internal/convert"
	"reflectdoc/internal/format"
	"reflectdoc/internal/reflection"
)

var showCmd = &cobra.Command{
	Use:   "show [input]",
	Short: "Render a declaration, or list the declarations of a source file, in the terminal",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		input := ""
		if len(args) > 0 {
			input = args[0]
		}
		p, err := loadProject(".")
		if err != nil {
			return err
		}

		var md string
		if strings.HasSuffix(input, ".ts") {
			md, err = p.fileListing(ctx, input)
		} else {
			md, err = p.preview(ctx, input, convert.ModeFull, config.Options{})
		}
		if err != nil {
			return err
		}

		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
		if err != nil {
			return errors.Wrap(err, "terminal renderer")
		}
		out, err := r.Render(md)
		if err != nil {
			return errors.Wrap(err, "render markdown")
		}
		fmt.Print(out)
		return nil
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview [input] [output] [key=value...]",
	Short: "Print the Markdown of one conversion",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, output := "", convert.ModeFull
		if len(args) > 0 {
			input = args[0]
		}
		if len(args) > 1 {
			output = args[1]
		}
		var params []string
		if len(args) > 2 {
			params = args[2:]
		}
		opts, err := config.ParseParams(params)
		if err != nil {
			return err
		}
		p, err := loadProject(".")
		if err != nil {
			return err
		}
		md, err := p.preview(cmd.Context(), input, output, opts)
		if err != nil {
			return err
		}
		fmt.Println(md)
		return nil
	},
}

func (p *project) preview(ctx context.Context, input, output string, opts config.Options) (string, error) {
	g, err := p.generator(ctx)
	if err != nil {
		return "", err
	}
	md, err := g.Preview(config.Section{
		Name:    "preview",
		Kind:    config.SectionConvert,
		Input:   input,
		Output:  output,
		Options: opts,
	})
	if errors.Is(err, reflection.ErrNoReflection) {
		return "", p.withSuggestions(ctx, err, input)
	}
	return md, err
}

// withSuggestions adds the indexed declarations sharing the last name of
// input as hints.
func (p *project) withSuggestions(ctx context.Context, err error, input string) error {
	store, ok, openErr := p.openStore()
	if openErr != nil || !ok {
		return err
	}
	defer store.Close()

	name := input[strings.LastIndex(input, ".")+1:]
	found, findErr := store.FindByName(ctx, name)
	if findErr != nil {
		return err
	}
	for _, d := range found {
		err = errors.WithHintf(err, "did you mean %s (%s:%d)?", d.QualifiedName, d.File, d.Line)
	}
	return err
}

// fileListing is a Markdown table of the indexed declarations of one file.
func (p *project) fileListing(ctx context.Context, file string) (string, error) {
	store, ok, err := p.openStore()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errors.WithHint(errors.Newf("no declaration index at %s", p.cfg.Reflection.DB), "run `reflectdoc scan` first")
	}
	defer store.Close()

	found, err := store.FindByFile(ctx, file)
	if err != nil {
		return "", err
	}
	var rows [][]string
	for _, d := range found {
		rows = append(rows, []string{"`" + d.QualifiedName + "`", string(d.Kind), strconv.Itoa(d.Line), d.ShortText})
	}
	h, err := content.NewHeading(file, 1, "", "")
	if err != nil {
		return "", err
	}
	return content.RenderAll([]content.Block{
		h,
		content.NewTable([]string{"Declaration", "Kind", "Line", "Description"}, rows),
	}, format.New(format.Markdown))
}
