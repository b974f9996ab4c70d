package stats

import (
	"fmt"
	"log/slog"
	"os"

	headers "github.com/DanielCharczynski/finagle"
	"github.com/DanielCharczynski/finagle/cmd/utils"
	"github.com/spf13/cobra"
)

// Command represents the stats command
var Command = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the headers stored in one or many header file(s)",
	Args:  cobra.MinimumNArgs(1),
	Run:   stats,
}

func init() {
	Command.Flags().IntP("threads", "t", 1, "Number of threads to use for loading files")
}

func stats(cmd *cobra.Command, files []string) {
	threads := utils.GetThreadsFlag(cmd)

	hm := headers.NewHeaderMap()
	if err := utils.LoadHeaderFiles(files, threads, hm); err != nil {
		slog.Error("failed to load files", "error", err)
		os.Exit(1)
	}

	values := 0
	duplicates := 0
	for name := range hm.Names() {
		n := len(hm.GetAll(name))
		values += n
		if n > 1 {
			duplicates++
		}
	}

	fmt.Printf("names: %d\n", hm.Length())
	fmt.Printf("values: %d\n", values)
	fmt.Printf("duplicated names: %d\n", duplicates)
}
