package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "recruitpipe"
)

type Config struct {
	EmployeesCSV string             `mapstructure:"employees-csv"`
	ReportsDir   string             `mapstructure:"reports-dir"`
	Candidates   []*CandidateConfig `mapstructure:"candidates"`
	Interviews   []*InterviewConfig `mapstructure:"interviews"`
	AI           *AIConfig          `mapstructure:"ai"`
}

// CandidateConfig describes one application submitted to the pipeline.
// Resume and cover letter may be given inline or as file paths.
type CandidateConfig struct {
	ID              string `mapstructure:"id"`
	Name            string `mapstructure:"name"`
	Email           string `mapstructure:"email"`
	Phone           string `mapstructure:"phone"`
	Position        string `mapstructure:"position"`
	ExperienceYears int    `mapstructure:"experience-years"`
	ResumeText      string `mapstructure:"resume-text"`
	ResumeFile      string `mapstructure:"resume-file"`
	CoverLetter     string `mapstructure:"cover-letter"`
	CoverLetterFile string `mapstructure:"cover-letter-file"`
}

// InterviewConfig is one interview round to conduct: the candidate, the
// stage and the interviewer feedback the stage score is derived from.
type InterviewConfig struct {
	Candidate string `mapstructure:"candidate"`
	Stage     string `mapstructure:"stage"`
	Feedback  string `mapstructure:"feedback"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile     string `mapstructure:"api-key-file"`
	Model          string `mapstructure:"model"`
	MaxRetries     int    `mapstructure:"max-retries"`
	TimeoutSeconds int    `mapstructure:"timeout-seconds"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "recruitpipe automates a hiring pipeline: openings from departures, screening, simulated interviews and hiring decisions",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is recruitpipe.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for run command now. If there is no config, we can skip initialization
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
