package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/sqlseg/internal/cli/output"
	"github.com/leapstack-labs/sqlseg/pkg/dialect"
	"github.com/spf13/cobra"
)

// DialectsOptions holds options for the dialects command.
type DialectsOptions struct {
	Format string // Output format
}

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	opts := &DialectsOptions{}
	cmd := &cobra.Command{
		Use:   "dialects [name]",
		Short: "List registered SQL dialects",
		Long: `List the registered dialects, or describe one dialect.

A dialect is a named registry of grammars and reserved words. Derived
dialects start as a copy of their base and override individual entries.`,
		Example: `  # List dialects
  sqlseg dialects

  # Show the postgres dialect
  sqlseg dialects postgres --format yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showDialect(cmd, args[0], opts)
			}
			return listDialects(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, yaml")

	return cmd
}

// DialectInfo is the serializable description of a dialect.
type DialectInfo struct {
	Name          string   `json:"name" yaml:"name"`
	Base          string   `json:"base,omitempty" yaml:"base,omitempty"`
	ReservedWords []string `json:"reserved_words" yaml:"reserved_words"`
	Grammars      []string `json:"grammars" yaml:"grammars"`
	SegmentTypes  []string `json:"segment_types" yaml:"segment_types"`
	LexCategories []string `json:"lex_categories,omitempty" yaml:"lex_categories,omitempty"`
}

func dialectInfo(d *dialect.Dialect) DialectInfo {
	info := DialectInfo{
		Name:          d.Name,
		Base:          d.Base,
		ReservedWords: d.ReservedWords(),
		Grammars:      d.Names(),
		SegmentTypes:  d.SegmentTypes(),
	}
	for _, r := range d.LexRules() {
		info.LexCategories = append(info.LexCategories, r.Category.String())
	}
	return info
}

func listDialects(cmd *cobra.Command, opts *DialectsOptions) error {
	cmdCtx, err := NewCommandContextWithoutDialect(cmd, opts.Format)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	var infos []DialectInfo
	for _, name := range dialect.List() {
		if d, ok := dialect.Get(name); ok {
			infos = append(infos, dialectInfo(d))
		}
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(infos)
	case output.ModeYAML:
		return r.YAML(infos)
	}

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		base := info.Base
		if base == "" {
			base = "-"
		}
		rows = append(rows, []string{
			info.Name,
			base,
			strconv.Itoa(len(info.ReservedWords)),
			strconv.Itoa(len(info.Grammars)),
			strconv.Itoa(len(info.SegmentTypes)),
		})
	}
	r.Header(1, fmt.Sprintf("Dialects (%d)", len(infos)))
	r.Table([]string{"Name", "Base", "Reserved", "Grammars", "Segments"}, rows)
	return nil
}

func showDialect(cmd *cobra.Command, name string, opts *DialectsOptions) error {
	cmdCtx, err := NewCommandContextWithoutDialect(cmd, opts.Format)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	d, err := resolveDialect(name)
	if err != nil {
		return err
	}
	info := dialectInfo(d)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(info)
	case output.ModeYAML:
		return r.YAML(info)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, info.Name))
		r.Println("")
		if info.Base != "" {
			r.Println(output.FormatKeyValue("Base", info.Base))
		}
		r.Println(output.FormatKeyValue("Grammars", strconv.Itoa(len(info.Grammars))))
		r.Println(output.FormatKeyValue("Segment types", strings.Join(info.SegmentTypes, ", ")))
		if len(info.LexCategories) > 0 {
			r.Println(output.FormatKeyValue("Lexer extensions", strings.Join(info.LexCategories, ", ")))
		}
		r.Println(output.FormatKeyValue("Reserved words", strings.Join(info.ReservedWords, ", ")))
		return nil
	}

	styles := r.Styles()
	r.Header(1, info.Name)
	if info.Base != "" {
		r.Printf("  %s: %s\n", styles.Bold.Render("Base"), info.Base)
	}
	r.Printf("  %s: %d\n", styles.Bold.Render("Grammars"), len(info.Grammars))
	r.Printf("  %s: %s\n", styles.Bold.Render("Segment types"), strings.Join(info.SegmentTypes, ", "))
	if len(info.LexCategories) > 0 {
		r.Printf("  %s: %s\n", styles.Bold.Render("Lexer extensions"), strings.Join(info.LexCategories, ", "))
	}
	r.Printf("  %s: %s\n", styles.Bold.Render("Reserved words"), strings.Join(info.ReservedWords, ", "))
	return nil
}
