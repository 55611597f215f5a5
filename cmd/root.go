package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "1.0.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔══════════════════════════════════════════════════════════╗",
		"║   ██╗███╗   ██╗███████╗██╗ ██████╗ ██╗  ██╗████████╗     ║",
		"║   ██║████╗  ██║██╔════╝██║██╔════╝ ██║  ██║╚══██╔══╝     ║",
		"║   ██║██╔██╗ ██║███████╗██║██║  ███╗███████║   ██║        ║",
		"║   ██║██║╚██╗██║╚════██║██║██║   ██║██╔══██║   ██║        ║",
		"║   ██║██║ ╚████║███████║██║╚██████╔╝██║  ██║   ██║        ║",
		"║   ╚═╝╚═╝  ╚═══╝╚══════╝╚═╝ ╚═════╝ ╚═╝  ╚═╝   ╚═╝        ║",
		"║                                                          ║",
		"║        📊 Store analytics: generate • load • query       ║",
		"╚══════════════════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("                        ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "insight",
	Short: "Generate, load and analyze a synthetic retail dataset",
	Long: `
Insight generates synthetic customers, products and sales, bulk-loads them
into a relational database and runs aggregate analytics over the result.

Database Support:
- PostgreSQL (schema store_analytics)
- MySQL
- SQLite`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("Insight CLI version %s\n", Version)
			os.Exit(0)
		}

		if len(args) == 0 {
			showBanner()
			fmt.Println()
			cmd.Help()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./insight.config.json)")
	rootCmd.PersistentFlags().BoolP("force", "f", false, "Skip confirmations")

	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env")
	}
	godotenv.Load(".env.local")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("insight.config")
	}

	viper.SetEnvPrefix("insight")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			color.Yellow("⚠️  Could not read config file %s: %v", cfgFile, err)
		}
	}
}
