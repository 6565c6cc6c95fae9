package topics

import (
	"strconv"

	"github.com/inmoflow/inbox/cmd/inbox/client"
	"github.com/spf13/cobra"
)

// logCmd represents the "log" command
var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show latest agent log messages",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		lines, _ := cmd.Flags().GetInt("lines")
		topic, _ := cmd.Flags().GetString("topic")

		call := client.GlobalAPI.NewCall("GET", "/log", map[string]string{
			"lines": strconv.Itoa(lines),
			"topic": topic,
		})
		call.Do()
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.Flags().IntP("lines", "n", 50, "number of log lines")
	logCmd.Flags().StringP("topic", "o", "*", "filter by topic (file name, or '.' for global)")
}
