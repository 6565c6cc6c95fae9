package topics

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"github.com/inmoflow/inbox/cmd/inbox/client"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// loginCmd represents the "login" command
var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Log in to the upstream server",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		email := args[0]

		var password string
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Print("Password: ")
			bytePassword, err := term.ReadPassword(int(syscall.Stdin))
			fmt.Println()
			if err != nil {
				log.Fatal(err)
			}
			password = string(bytePassword)
		} else {
			reader := bufio.NewReader(os.Stdin)
			line, err := reader.ReadString('\n')
			if err != nil {
				log.Fatal(err)
			}
			password = strings.TrimRight(line, "\n")
		}

		call := client.GlobalAPI.NewCall("POST", "/login", map[string]string{
			"email":    email,
			"password": password,
		})
		call.Do()
	},
}

// logoutCmd represents the "logout" command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored upstream session",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		call := client.GlobalAPI.NewCall("POST", "/logout", map[string]string{})
		call.Do()
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
