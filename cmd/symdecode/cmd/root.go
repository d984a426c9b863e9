// Package cmd implements the symdecode CLI's cobra command tree.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "symdecode",
	Short: "Decode mangled MSVC C++ symbol names",
	Long: `symdecode decodes Microsoft Visual C++ name-mangled symbols back into
their human-readable C++ declarations.

It understands the full mangling grammar: qualified names and back
-reference compression, member and global functions, calling conventions,
pointer/reference/enum/compound types, templates, RTTI descriptors,
and data symbols.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
}
