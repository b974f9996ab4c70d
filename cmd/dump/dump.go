package dump

import (
	"fmt"
	"log/slog"
	"os"

	headers "github.com/DanielCharczynski/finagle"
	"github.com/DanielCharczynski/finagle/cmd/utils"
	"github.com/spf13/cobra"
)

// Command represents the dump command
var Command = &cobra.Command{
	Use:   "dump",
	Short: "Print the headers stored in one or many header file(s)",
	Args:  cobra.MinimumNArgs(1),
	Run:   dump,
}

func init() {
	Command.Flags().IntP("threads", "t", 1, "Number of threads to use for loading files")
	Command.Flags().Bool("names", false, "Print each distinct header name once instead of every name/value pair")
}

func dump(cmd *cobra.Command, files []string) {
	threads := utils.GetThreadsFlag(cmd)
	namesOnly, _ := cmd.Flags().GetBool("names")

	hm := headers.NewHeaderMap()
	if err := utils.LoadHeaderFiles(files, threads, hm); err != nil {
		slog.Error("failed to load files", "error", err)
		os.Exit(1)
	}

	if namesOnly {
		for name := range hm.Names() {
			fmt.Println(name)
		}
		return
	}

	if _, err := hm.Write(os.Stdout); err != nil {
		slog.Error("failed to write headers", "error", err)
		os.Exit(1)
	}
}
