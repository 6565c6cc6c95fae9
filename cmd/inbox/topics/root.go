package topics

import (
	"fmt"
	"log"
	"os"
	"path"

	"github.com/inmoflow/inbox/cmd/inbox/client"
	"github.com/inmoflow/inbox/common"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "inbox",
	Short: "Inbox CLI client",
	Long: `Inbox will reliably send dropped files to your server

Sample usage:
- inbox status
- inbox recent
- inbox drop invoice.pdf --wait
	`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s\n", cmd.Short)
		fmt.Printf("%s\n", cmd.Long)
		fmt.Printf("Use --help to list commands and options.\n\n")
		fmt.Printf("configuration file '%s'\n",
			client.GlobalConfig.ConfigFile,
		)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	var err error
	client.GlobalHome, err = homedir.Dir()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	if err = rootCmd.Execute(); err != nil {
		return err
	}
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&client.GlobalCfgFile, "config", "c", "", "config file (default is $HOME/.inbox.toml)")

	rootCmd.PersistentFlags().BoolP("trace", "t", false, "also show server TRACE messages (debug)")
	rootCmd.PersistentFlags().BoolP("time", "d", false, "show server timestamps on messages")
	rootCmd.PersistentFlags().BoolP("version", "v", false, "show client version")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {

	cfgFile := client.GlobalCfgFile
	if cfgFile == "" {
		cfgFile = path.Clean(client.GlobalHome + "/.inbox.toml")
	}

	var err error
	client.GlobalConfig, err = NewRootConfig(cfgFile)
	if err != nil {
		log.Fatalf("Error: %s", err)
	}

	if client.GlobalConfig == nil {
		fmt.Printf(`ERROR: Configuration file not found: %s

Example:

url = "http://127.0.0.1:8686"
key = "gein2xah7keeL33thpe9ahvaegF15TUL3surae3Chue4riokooJ5WuTI80FTWfz2"

other settings: trace, time (boolean)
Note: you can also use environment variables (TRACE, TIME).
`, cfgFile)
		os.Exit(1)
	}

	client.GlobalAPI = client.NewAPI(
		client.GlobalConfig.URL,
		client.GlobalConfig.Key,
		client.GlobalConfig.Trace,
		client.GlobalConfig.Time,
	)

	if rootCmd.PersistentFlags().Lookup("version").Changed {
		fmt.Println(common.ClientVersion)
		os.Exit(0)
	}
}
