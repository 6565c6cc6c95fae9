package topics

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/inmoflow/inbox/cmd/inbox/client"
	"github.com/inmoflow/inbox/common"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var recentFlagBasic bool

// recentCmd represents the "recent" command
var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recent uploads, most recent first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		recentFlagBasic, _ = cmd.Flags().GetBool("basic")
		if recentFlagBasic == true {
			client.GetExitMessage().Disable()
		}

		call := client.GlobalAPI.NewCall("GET", "/recent", map[string]string{})
		call.JSONCallback = recentCB
		call.Do()
	},
}

func recentCB(reader io.Reader, headers http.Header) {
	var data common.APIRecentEntries
	dec := json.NewDecoder(reader)
	err := dec.Decode(&data)
	if err != nil {
		log.Fatal(err.Error())
	}

	if recentFlagBasic {
		for _, line := range data {
			fmt.Printf("%s %s %s\n", line.Timestamp, line.Status, line.Name)
		}
	} else {
		if len(data) == 0 {
			fmt.Printf("No recent uploads.\n")
			return
		}

		strData := [][]string{}
		for _, line := range data {
			strData = append(strData, []string{
				line.Timestamp,
				line.Name,
				line.Status,
				line.Error,
			})
		}
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Time", "Name", "Status", "Message"})
		table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
		table.SetCenterSeparator("|")
		table.AppendBulk(strData)
		table.Render()
	}
}

func init() {
	rootCmd.AddCommand(recentCmd)
	recentCmd.Flags().BoolP("basic", "b", false, "show basic list, without any formating")
}
