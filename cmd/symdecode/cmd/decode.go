package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/symdecode/internal/printer"
	"github.com/cwbudde/symdecode/pkg/demangle"
)

var (
	decodeAllowFragments   bool
	decodeEmulateRefBugs   bool
	decodeNoUnderscores    bool
	decodeNoToolchainExt   bool
	decodeNoReturnType     bool
	decodeNoCallConv       bool
	decodeNoMemberStorage  bool
	decodeNoMemberAccess   bool
	decodeNoMemberType     bool
	decodeNoCompoundClass  bool
	decodeNoPtr64          bool
	decodeNameOnly         bool
	decodeTypeOnly         bool
	decodeNoRefEmulation   bool
)

var decodeCmd = &cobra.Command{
	Use:   "decode [symbol]",
	Short: "Decode a single mangled symbol",
	Long: `Decode a single mangled MSVC C++ symbol into its C++ declaration.

The symbol may be given as an argument or piped in on standard input.

Examples:
  symdecode decode "?foo@@YAHH@Z"
  echo "?foo@@YAHH@Z" | symdecode decode`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	bindDisplayFlags(decodeCmd)
}

func bindDisplayFlags(c *cobra.Command) {
	c.Flags().BoolVar(&decodeAllowFragments, "allow-name-fragments", false, "accept a bare qualified name with no trailing type information")
	c.Flags().BoolVar(&decodeEmulateRefBugs, "emulate-reference-bugs", false, "emulate a documented reference-toolchain quirk in template integer literals")
	c.Flags().BoolVar(&decodeNoUnderscores, "suppress-leading-underscores", false, "suppress leading underscores (accepted; has no effect on output)")
	c.Flags().BoolVar(&decodeNoToolchainExt, "suppress-toolchain-extensions", false, "suppress toolchain extension keywords (__based, etc.) (accepted; has no effect on output)")
	c.Flags().BoolVar(&decodeNoReturnType, "suppress-return-type", false, "suppress the return type")
	c.Flags().BoolVar(&decodeNoCallConv, "suppress-calling-convention", false, "suppress the calling-convention keyword")
	c.Flags().BoolVar(&decodeNoMemberStorage, "suppress-member-storage-class", false, "suppress static/virtual keywords")
	c.Flags().BoolVar(&decodeNoMemberAccess, "suppress-member-access", false, "suppress the public/protected/private prefix")
	c.Flags().BoolVar(&decodeNoMemberType, "suppress-member-type", false, "suppress a member variable's type (accepted; has no effect on output)")
	c.Flags().BoolVar(&decodeNoCompoundClass, "suppress-compound-type-class", false, "suppress the class/struct/union keyword")
	c.Flags().BoolVar(&decodeNoPtr64, "suppress-ptr64", false, "suppress __ptr64 annotations")
	c.Flags().BoolVar(&decodeNameOnly, "name-only", false, "print only the qualified name")
	c.Flags().BoolVar(&decodeTypeOnly, "type-only", false, "print only the type (accepted; has no effect on output)")
	c.Flags().BoolVar(&decodeNoRefEmulation, "suppress-reference-tool-emulation", false, "suppress reference-toolchain bug emulation in output (accepted; has no effect on output)")
}

func parseOptsFromFlags() []demangle.ParseOption {
	return []demangle.ParseOption{
		demangle.WithAllowNameFragments(decodeAllowFragments),
		demangle.WithReferenceToolEmulation(decodeEmulateRefBugs),
	}
}

func displayOptsFromFlags() []printer.DisplayOption {
	return []printer.DisplayOption{
		printer.WithSuppressLeadingUnderscores(decodeNoUnderscores),
		printer.WithSuppressToolchainExtensions(decodeNoToolchainExt),
		printer.WithSuppressReturnType(decodeNoReturnType),
		printer.WithSuppressCallingConvention(decodeNoCallConv),
		printer.WithSuppressMemberStorageClass(decodeNoMemberStorage),
		printer.WithSuppressMemberAccess(decodeNoMemberAccess),
		printer.WithSuppressMemberType(decodeNoMemberType),
		printer.WithSuppressCompoundTypeClass(decodeNoCompoundClass),
		printer.WithSuppressPtr64(decodeNoPtr64),
		printer.WithNameOnly(decodeNameOnly),
		printer.WithTypeOnly(decodeTypeOnly),
		printer.WithSuppressReferenceToolEmulation(decodeNoRefEmulation),
	}
}

func runDecode(c *cobra.Command, args []string) error {
	mangled, err := readOneSymbol(args)
	if err != nil {
		return err
	}
	out, err := decodeOne(mangled)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.OutOrStdout(), out)
	return nil
}

func decodeOne(mangled string) (string, error) {
	sym, err := demangle.Parse(mangled, parseOptsFromFlags()...)
	if err != nil {
		return "", fmt.Errorf("decoding %q: %w", mangled, err)
	}
	return sym.Display(displayOptsFromFlags()...), nil
}

func readOneSymbol(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return trimNewline(line), nil
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
