package topics

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"
	"github.com/c2h5oh/datasize"
	"github.com/inmoflow/inbox/cmd/inbox/client"
	"github.com/inmoflow/inbox/common"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var dropVars struct {
	wait     bool
	fileName string
	loop     bool
	spinner  *spinner.Spinner
}

// dropCmd represents the "drop" command
var dropCmd = &cobra.Command{
	Use:   "drop <file>",
	Short: "Copy a file into the inbox folder, to be uploaded by the agent",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dropVars.wait, _ = cmd.Flags().GetBool("wait")
		dropVars.fileName = filepath.Base(args[0])

		// the inbox folder location comes from the agent
		call := client.GlobalAPI.NewCall("GET", "/status", map[string]string{})
		call.JSONCallback = func(reader io.Reader, headers http.Header) {
			var data common.APIStatus
			dec := json.NewDecoder(reader)
			if err := dec.Decode(&data); err != nil {
				log.Fatal(err.Error())
			}

			if err := dropFile(args[0], data.InboxPath); err != nil {
				log.Fatal(err.Error())
			}
		}
		call.Do()

		if dropVars.wait {
			dropWait()
		}
	},
}

func dropFile(source string, inboxPath string) error {
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	stat, err := in.Stat()
	if err != nil {
		return err
	}

	dest := filepath.Join(inboxPath, dropVars.fileName)
	if common.PathExist(dest) {
		return fmt.Errorf("error: file '%s' already exists in the inbox", dropVars.fileName)
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	fmt.Printf("copying %s to the inbox…\n", dropVars.fileName)

	var bar io.Writer
	if isatty.IsTerminal(os.Stdout.Fd()) {
		bar = progressbar.DefaultBytes(
			stat.Size(),
			"",
		)
	} else {
		bar = io.Discard
	}

	bytesWritten, err := io.Copy(io.MultiWriter(out, bar), in)
	if err != nil {
		return err
	}

	fmt.Printf("finished, copied %s\n", (datasize.ByteSize(bytesWritten) * datasize.B).HR())
	return nil
}

// dropWait polls the recent list until our file reaches a terminal status
func dropWait() {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		s := spinner.New(spinner.CharSets[37], 200*time.Millisecond)
		s.Suffix = fmt.Sprintf(" waiting for '%s' upload…", dropVars.fileName)
		s.Start()
		dropVars.spinner = s
	}

	call := client.GlobalAPI.NewCall("GET", "/recent", map[string]string{})
	call.JSONCallback = dropWaitCB

	dropVars.loop = true
	for {
		call.Do()
		if !dropVars.loop {
			break
		}
		time.Sleep(2 * time.Second)
	}
}

func dropWaitCB(reader io.Reader, headers http.Header) {
	var data common.APIRecentEntries
	dec := json.NewDecoder(reader)
	err := dec.Decode(&data)
	if err != nil {
		log.Fatal(err.Error())
	}

	for _, entry := range data {
		if entry.Name != dropVars.fileName {
			continue
		}

		switch entry.Status {
		case common.APIUploadStatusSuccess:
			dropStopSpinner()
			fmt.Printf("%s: uploaded\n", dropVars.fileName)
			dropVars.loop = false
		case common.APIUploadStatusFailed:
			dropStopSpinner()
			fmt.Printf("%s: failed (%s)\n", dropVars.fileName, entry.Error)
			dropVars.loop = false
		}
		return
	}
}

func dropStopSpinner() {
	if dropVars.spinner != nil {
		dropVars.spinner.Stop()
		fmt.Println()
	}
}

func init() {
	rootCmd.AddCommand(dropCmd)
	dropCmd.Flags().BoolP("wait", "w", false, "wait until the file is uploaded (or failed)")
}
