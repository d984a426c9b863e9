package cmd

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/maruel/natural"
	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/cwbudde/symdecode/internal/printer"
	"github.com/cwbudde/symdecode/pkg/demangle"
)

var (
	batchJSON   bool
	batchConfig string
	batchSort   bool
)

// batchConfigFile is the on-disk defaults file: which display flags to
// apply to every symbol in a batch run.
type batchConfigFile struct {
	SuppressLeadingUnderscores   bool `yaml:"suppress_leading_underscores"`
	SuppressToolchainExtensions  bool `yaml:"suppress_toolchain_extensions"`
	SuppressReturnType           bool `yaml:"suppress_return_type"`
	SuppressCallingConvention    bool `yaml:"suppress_calling_convention"`
	SuppressMemberStorageClass   bool `yaml:"suppress_member_storage_class"`
	SuppressMemberAccess         bool `yaml:"suppress_member_access"`
	SuppressMemberType           bool `yaml:"suppress_member_type"`
	SuppressCompoundTypeClass    bool `yaml:"suppress_compound_type_class"`
	SuppressPtr64                bool `yaml:"suppress_ptr64"`
	NameOnly                     bool `yaml:"name_only"`
	TypeOnly                     bool `yaml:"type_only"`
	SuppressReferenceToolEmulation bool `yaml:"suppress_reference_tool_emulation"`
	AllowNameFragments           bool `yaml:"allow_name_fragments"`
}

func (c batchConfigFile) displayOptions() []printer.DisplayOption {
	return []printer.DisplayOption{
		printer.WithSuppressLeadingUnderscores(c.SuppressLeadingUnderscores),
		printer.WithSuppressToolchainExtensions(c.SuppressToolchainExtensions),
		printer.WithSuppressReturnType(c.SuppressReturnType),
		printer.WithSuppressCallingConvention(c.SuppressCallingConvention),
		printer.WithSuppressMemberStorageClass(c.SuppressMemberStorageClass),
		printer.WithSuppressMemberAccess(c.SuppressMemberAccess),
		printer.WithSuppressMemberType(c.SuppressMemberType),
		printer.WithSuppressCompoundTypeClass(c.SuppressCompoundTypeClass),
		printer.WithSuppressPtr64(c.SuppressPtr64),
		printer.WithNameOnly(c.NameOnly),
		printer.WithTypeOnly(c.TypeOnly),
		printer.WithSuppressReferenceToolEmulation(c.SuppressReferenceToolEmulation),
	}
}

var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Decode a newline-delimited file of mangled symbols",
	Long: `Decode every mangled symbol in a file, one per line, blank lines and
lines starting with '#' ignored.

Examples:
  symdecode batch corpus.txt
  symdecode batch --json corpus.txt
  symdecode batch --config defaults.yaml --json corpus.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().BoolVar(&batchJSON, "json", false, "emit a JSON array instead of plain text")
	batchCmd.Flags().StringVar(&batchConfig, "config", "", "YAML file of default display options")
	batchCmd.Flags().BoolVar(&batchSort, "sort", false, "sort output by decoded name in natural order")
}

type batchResult struct {
	Mangled string
	Decoded string
	Err     string
}

func runBatch(c *cobra.Command, args []string) error {
	cfg, err := loadBatchConfig(batchConfig)
	if err != nil {
		return err
	}

	lines, err := readLines(args)
	if err != nil {
		return err
	}

	results := decodeBatch(lines, cfg)

	if batchSort {
		sort.Slice(results, func(i, j int) bool {
			return natural.Less(results[i].Decoded, results[j].Decoded)
		})
	}

	if batchJSON {
		return writeBatchJSON(c, results)
	}
	return writeBatchText(c, results)
}

func loadBatchConfig(path string) (batchConfigFile, error) {
	var cfg batchConfigFile
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %q: %w", path, err)
	}
	return cfg, nil
}

func readLines(args []string) ([]string, error) {
	var r *bufio.Scanner
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("opening %q: %w", args[0], err)
		}
		defer f.Close()
		r = bufio.NewScanner(f)
	} else {
		r = bufio.NewScanner(os.Stdin)
	}
	var lines []string
	for r.Scan() {
		line := strings.TrimSpace(r.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return lines, nil
}

func decodeBatch(lines []string, cfg batchConfigFile) []batchResult {
	results := make([]batchResult, 0, len(lines))
	for _, mangled := range lines {
		decoded, err := decodeWithConfig(mangled, cfg)
		res := batchResult{Mangled: mangled, Decoded: decoded}
		if err != nil {
			res.Err = err.Error()
		}
		results = append(results, res)
	}
	return results
}

func decodeWithConfig(mangled string, cfg batchConfigFile) (string, error) {
	sym, err := demangle.Parse(mangled, demangle.WithAllowNameFragments(cfg.AllowNameFragments))
	if err != nil {
		return "", err
	}
	return sym.Display(cfg.displayOptions()...), nil
}

func writeBatchText(c *cobra.Command, results []batchResult) error {
	w := c.OutOrStdout()
	for _, r := range results {
		if r.Err != "" {
			fmt.Fprintf(w, "%s\t<error: %s>\n", r.Mangled, r.Err)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", r.Mangled, r.Decoded)
	}
	return nil
}

func writeBatchJSON(c *cobra.Command, results []batchResult) error {
	doc := "[]"
	var err error
	for i, r := range results {
		path := fmt.Sprintf("%d.mangled", i)
		doc, err = sjson.Set(doc, path, r.Mangled)
		if err != nil {
			return err
		}
		if r.Err != "" {
			doc, err = sjson.Set(doc, fmt.Sprintf("%d.error", i), r.Err)
		} else {
			doc, err = sjson.Set(doc, fmt.Sprintf("%d.decoded", i), r.Decoded)
		}
		if err != nil {
			return err
		}
	}
	fmt.Fprintln(c.OutOrStdout(), doc)
	return nil
}
