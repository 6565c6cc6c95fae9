package topics

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"reflect"

	"github.com/inmoflow/inbox/cmd/inbox/client"
	"github.com/inmoflow/inbox/common"
	"github.com/spf13/cobra"
)

// statusCmd represents the "status" command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Get informations about the agent",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		call := client.GlobalAPI.NewCall("GET", "/status", map[string]string{})
		call.JSONCallback = statusDisplay
		call.Do()
	},
}

func statusDisplay(reader io.Reader, headers http.Header) {
	var data common.APIStatus
	dec := json.NewDecoder(reader)
	err := dec.Decode(&data)
	if err != nil {
		log.Fatal(err.Error())
	}
	v := reflect.ValueOf(data)
	typeOfT := v.Type()
	for i := 0; i < v.NumField(); i++ {
		key := typeOfT.Field(i).Name
		format, _ := typeOfT.Field(i).Tag.Lookup("format")
		if format == "ignore" {
			continue
		}
		val := common.InterfaceValueToString(v.Field(i).Interface(), format)
		fmt.Printf("%s: %s\n", key, val)
	}
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
