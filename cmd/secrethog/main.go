// Command secrethog scans a git repository's history for leaked secrets.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/opsource/secrethog/internal/gitscan"
	"github.com/opsource/secrethog/internal/reporter"
	"github.com/opsource/secrethog/pkg/config"
	"github.com/opsource/secrethog/pkg/scanner"
)

var version = "1.0.0"

var (
	regexFile       string
	caseInsensitive bool
	entropy         bool
	prettyPrint     bool
	outputFile      string
	sinceCommit     string
	sshKeyPath      string
	sshKeyPhrase    string
	verbosity       int
	configFile      string
)

var rootCmd = &cobra.Command{
	Use:     "secrethog [REPO]",
	Short:   "Scan a git repository's history for leaked secrets",
	Long:    `secrethog walks every commit reachable from any reference in a git repository, diffs it against its parent, and reports strings that look like secrets: known credential patterns and high-entropy tokens.`,
	Version: version,
	Args:    cobra.ExactArgs(1),
	RunE:    runScan,
}

func init() {
	rootCmd.Flags().StringVar(&regexFile, "regex", "", "Path to a JSON file of reason -> pattern overriding the built-in catalogue")
	rootCmd.Flags().BoolVar(&caseInsensitive, "caseinsensitive", false, "Compile all patterns case-insensitively")
	rootCmd.Flags().BoolVar(&entropy, "entropy", false, "Additionally flag high-entropy strings")
	rootCmd.Flags().BoolVar(&prettyPrint, "prettyprint", false, "Pretty-print the JSON output")
	rootCmd.Flags().StringVarP(&outputFile, "outputfile", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().StringVar(&sinceCommit, "since_commit", "", "Only include commits at or after this commit's time")
	rootCmd.Flags().StringVar(&sshKeyPath, "sshkeypath", "", "Path to an SSH private key for cloning over SSH")
	rootCmd.Flags().StringVar(&sshKeyPhrase, "sshkeyphrase", "", "Passphrase for the SSH private key")
	rootCmd.Flags().CountVarP(&verbosity, "verbose", "v", "Increase logging verbosity (repeatable)")
	rootCmd.Flags().StringVar(&configFile, "config", "", "Path to a config file (default: .secrethog.yaml)")
}

func runScan(cmd *cobra.Command, args []string) error {
	repoPath := args[0]

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyFlagOverrides(cfg, cmd.Flags())

	scanner.SetLogging(cfg.Verbosity)

	s, err := scanner.New(
		scanner.WithRegexFile(cfg.RegexFile),
		scanner.WithCaseInsensitive(cfg.CaseInsensitive),
	)
	if err != nil {
		return fmt.Errorf("building scanner: %w", err)
	}

	repo, err := gitscan.OpenRepository(repoPath, gitscan.LocatorOptions{
		SSHKeyPath:     cfg.SSHKeyPath,
		SSHKeyPassword: cfg.SSHKeyPhrase,
	})
	if err != nil {
		return fmt.Errorf("opening repository: %w", err)
	}

	findings, err := gitscan.Scan(repo, s, gitscan.ScanOptions{
		SinceCommit:   cfg.SinceCommit,
		EnableEntropy: cfg.Entropy,
	})
	if err != nil {
		return fmt.Errorf("scanning repository: %w", err)
	}

	if err := scanner.OutputFindings(findings, cfg.OutputFile, cfg.PrettyPrint); err != nil {
		return fmt.Errorf("writing findings: %w", err)
	}

	fmt.Fprint(os.Stderr, reporter.NewReporter().Summary(repoPath, findings))
	return nil
}

// applyFlagOverrides layers explicit CLI flags on top of the loaded config,
// so a flag beats a config file which beats the built-in default.
func applyFlagOverrides(cfg *config.Config, flags *pflag.FlagSet) {
	if flags.Changed("regex") {
		cfg.RegexFile = regexFile
	}
	if flags.Changed("caseinsensitive") {
		cfg.CaseInsensitive = caseInsensitive
	}
	if flags.Changed("entropy") {
		cfg.Entropy = entropy
	}
	if flags.Changed("prettyprint") {
		cfg.PrettyPrint = prettyPrint
	}
	if flags.Changed("outputfile") {
		cfg.OutputFile = outputFile
	}
	if flags.Changed("since_commit") {
		cfg.SinceCommit = sinceCommit
	}
	if flags.Changed("sshkeypath") {
		cfg.SSHKeyPath = sshKeyPath
	}
	if flags.Changed("sshkeyphrase") {
		cfg.SSHKeyPhrase = sshKeyPhrase
	}
	if flags.Changed("verbose") {
		cfg.Verbosity = verbosity
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
