package internal

import (
	stdlog "log"

	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"

	_ "github.com/goplus/easyblocks/easyblocks/generic"
	_ "github.com/goplus/easyblocks/easyblocks/superlu"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "easyblock",
	Short: "easyblock builds and installs scientific software",
	Long:  `easyblock configures, builds, tests and installs a package described by an easyconfig file, using the easyblock registered for it.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug {
			log.SetOutputLevel(log.Ldebug)
		} else {
			log.SetOutputLevel(log.Linfo)
		}
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug log output")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		stdlog.Fatal(err)
	}
}
