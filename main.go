package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Filtering
	includePatterns string
	excludePatterns string
	maxSizeBytes    int64
	maxDepth        int
	showHidden      bool
	noIgnore        bool
	langOnly        bool

	// Tokenizer
	encodingName  string
	modelName     string
	tokenizerType string
	tokenizerFile string

	// Processing
	maxWorkers int

	// Output
	quiet           bool
	verbose         bool
	showStats       bool
	reportFile      string
	pdfFile         string
	copyToClipboard bool
)

// version is set via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "tokenscope [PATH]",
	Short: "Count BPE tokens in files, directories, git repos and web pages.",
	Long: `tokenscope counts the tokens a byte-pair-encoding tokenizer would produce
for a text file, a directory tree, a remote git repository, or a web page,
and reports aggregate statistics for LLM input budgeting.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	Run:     run,
}

func run(cmd *cobra.Command, args []string) {
	path := "."
	if len(args) == 1 {
		path = args[0]
	}

	includes := parsePatterns(includePatterns)
	excludes := parsePatterns(excludePatterns)
	if err := validatePatterns(includes); err != nil {
		fatal(err.Error(), "Check the --filter pattern syntax (*, ?, [seq]).")
	}
	if err := validatePatterns(excludes); err != nil {
		fatal(err.Error(), "Check the --exclude pattern syntax (*, ?, [seq]).")
	}
	if maxWorkers < 1 {
		fatal(fmt.Sprintf("worker count must be at least 1, got %d", maxWorkers),
			"Pass --max-workers a positive integer.")
	}

	tk, err := newTokenizer(TokenizerConfig{
		Backend:  tokenizerType,
		Encoding: encodingName,
		Model:    modelName,
		File:     tokenizerFile,
	})
	if err != nil {
		fatal(fmt.Sprintf("initializing tokenizer: %v", err),
			"Use a known encoding name such as cl100k_base or o200k_base.")
	}
	defer tk.Close()

	// Interrupt terminates the whole run; partial stats are discarded.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nOperation cancelled.")
		os.Exit(0)
	}()

	switch {
	case isWebURL(path):
		runWeb(tk, path)
	case isGitURL(path):
		tempDir, err := cloneGitRepo(path, quiet)
		if err != nil {
			fatal(err.Error(), "Check the repository URL and your network access.")
		}
		defer os.RemoveAll(tempDir)
		runFolder(tk, tempDir, path)
	default:
		info, err := os.Stat(path)
		if err != nil {
			fatal(fmt.Sprintf("accessing %s: %v", path, err), hintFor(err))
		}
		if info.IsDir() {
			runFolder(tk, path, path)
		} else {
			runFile(tk, path)
		}
	}
}

// runFolder executes the core pipeline over root. displayPath is what the
// user asked for (the git URL for cloned repos) and is used in output.
func runFolder(tk Tokenizer, root, displayPath string) {
	var langData *LanguageData
	if langOnly {
		var err error
		langData, err = loadLanguageData()
		if err != nil {
			fatal(err.Error(), "The embedded file type definitions failed to parse; rebuild the binary.")
		}
	}

	opts := FilterOptions{
		Include:    parsePatterns(includePatterns),
		Exclude:    parsePatterns(excludePatterns),
		ShowHidden: showHidden,
		NoIgnore:   noIgnore,
		MaxSize:    maxSizeBytes,
		MaxDepth:   maxDepth,
		LangOnly:   langOnly,
	}

	if !quiet {
		fmt.Fprintf(os.Stderr, "Scanning %s (encoding: %s, workers: %d)\n", displayPath, tk.Name(), maxWorkers)
	}

	stats, results, err := countFolder(tk, root, opts, langData, maxWorkers)
	if err != nil {
		fatal(err.Error(), hintFor(err))
	}

	if reportFile != "" {
		if err := writeCSVReport(results, reportFile); err != nil {
			fatal(err.Error(), "Check that the report path is writable.")
		}
		if !quiet {
			fmt.Fprintf(os.Stderr, "CSV report written to %s\n", reportFile)
		}
	}
	if pdfFile != "" {
		if err := writePDFReport(displayPath, stats, results, pdfFile); err != nil {
			fatal(err.Error(), "Check that the PDF path is writable.")
		}
		if !quiet {
			fmt.Fprintf(os.Stderr, "PDF report written to %s\n", pdfFile)
		}
	}

	var out strings.Builder
	if quiet {
		out.WriteString(fmt.Sprintf("%d\n", stats.TotalTokens))
	} else {
		if verbose {
			out.WriteString(renderFileResults(results))
			out.WriteString("\n")
		}
		out.WriteString(renderSummary(displayPath, stats))
	}
	emit(out.String())
}

// runFile executes single-file mode, which is strict about decode errors.
func runFile(tk Tokenizer, path string) {
	stats, err := countSingleFile(tk, path)
	if err != nil {
		fatal(err.Error(), hintFor(err))
	}

	if quiet {
		emit(fmt.Sprintf("%d\n", stats.TokenCount))
		return
	}
	emit(renderFileStats(path, tk.Name(), stats, showStats))
}

// runWeb fetches a page, converts it to markdown and counts the result.
func runWeb(tk Tokenizer, url string) {
	doc, err := fetchWebDocument(url)
	if err != nil {
		fatal(err.Error(), "Check the URL; only HTML pages are supported.")
	}

	count := tk.CountTokens(doc.Markdown)
	if quiet {
		emit(fmt.Sprintf("%d\n", count))
		return
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Page:        %s\n", doc.Title))
	b.WriteString(fmt.Sprintf("URL:         %s\n", doc.URL))
	b.WriteString(fmt.Sprintf("Token count: %d\n", count))
	b.WriteString(fmt.Sprintf("Markdown:    %s\n", formatSize(int64(len(doc.Markdown)))))
	emit(b.String())
}

// emit sends the rendered output to its destination: clipboard when
// requested, stdout otherwise.
func emit(text string) {
	if copyToClipboard {
		if err := clipboard.WriteAll(text); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing to clipboard: %v\n", err)
			fmt.Print(text)
			return
		}
		fmt.Fprintln(os.Stderr, "Output copied to clipboard.")
		return
	}
	fmt.Print(text)
}

// fatal prints a one-line diagnosis plus one remediation hint and exits 1.
func fatal(diagnosis, hint string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", diagnosis)
	if hint != "" {
		fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
	}
	os.Exit(1)
}

// hintFor picks the remediation hint for common filesystem failures.
func hintFor(err error) string {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return "Check the path and try again."
	case errors.Is(err, os.ErrPermission):
		return "Check the file permissions and try again."
	case errors.Is(err, errNotDirectory):
		return "Provide a directory path, or pass a single file to count it alone."
	case errors.Is(err, errBinaryFile):
		return "This tool only works with text files."
	case errors.Is(err, errInvalidUTF8):
		return "Check the file encoding; only UTF-8 text is supported."
	default:
		return ""
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Filtering
	rootCmd.Flags().StringVarP(&includePatterns, "filter", "f", "", `Include only files matching these patterns (comma-separated, e.g. "*.py,*.js")`)
	viper.BindPFlag("filter", rootCmd.Flags().Lookup("filter"))
	rootCmd.Flags().StringVarP(&excludePatterns, "exclude", "e", "", `Exclude files matching these patterns (comma-separated, e.g. "*.log,*.tmp")`)
	viper.BindPFlag("exclude", rootCmd.Flags().Lookup("exclude"))
	rootCmd.Flags().Int64Var(&maxSizeBytes, "max-size", 0, "Maximum file size in bytes (0 for no limit)")
	viper.BindPFlag("max_size", rootCmd.Flags().Lookup("max-size"))
	rootCmd.Flags().IntVar(&maxDepth, "max-depth", 0, "Maximum directory depth to traverse (0 for no limit)")
	viper.BindPFlag("max_depth", rootCmd.Flags().Lookup("max-depth"))
	rootCmd.Flags().BoolVarP(&showHidden, "hidden", "H", false, "Include hidden files and directories")
	viper.BindPFlag("hidden", rootCmd.Flags().Lookup("hidden"))
	rootCmd.Flags().BoolVar(&noIgnore, "no-ignore", false, "Don't respect .gitignore files")
	viper.BindPFlag("no_ignore", rootCmd.Flags().Lookup("no-ignore"))
	rootCmd.Flags().BoolVar(&langOnly, "lang-only", false, "Count only files with a known text file type")
	viper.BindPFlag("lang_only", rootCmd.Flags().Lookup("lang-only"))

	// Tokenizer
	rootCmd.Flags().StringVar(&encodingName, "encoding", defaultEncoding, "Tokenizer encoding to use")
	viper.BindPFlag("encoding", rootCmd.Flags().Lookup("encoding"))
	rootCmd.Flags().StringVar(&modelName, "model", "", "Select the encoding by model name instead (e.g. gpt-4o)")
	viper.BindPFlag("model", rootCmd.Flags().Lookup("model"))
	rootCmd.Flags().StringVar(&tokenizerType, "tokenizer", "tiktoken", "Tokenizer backend: tiktoken or huggingface")
	viper.BindPFlag("tokenizer", rootCmd.Flags().Lookup("tokenizer"))
	rootCmd.Flags().StringVar(&tokenizerFile, "tokenizer-file", "", "Path to a local tokenizer.json (huggingface backend)")
	viper.BindPFlag("tokenizer_file", rootCmd.Flags().Lookup("tokenizer-file"))

	// Processing
	rootCmd.Flags().IntVarP(&maxWorkers, "max-workers", "w", defaultWorkers, "Number of parallel workers")
	viper.BindPFlag("max_workers", rootCmd.Flags().Lookup("max-workers"))

	// Output
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Output only the total token count")
	viper.BindPFlag("quiet", rootCmd.Flags().Lookup("quiet"))
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "List every processed file")
	viper.BindPFlag("verbose", rootCmd.Flags().Lookup("verbose"))
	rootCmd.Flags().BoolVarP(&showStats, "stats", "s", false, "Show detailed statistics in single-file mode")
	viper.BindPFlag("stats", rootCmd.Flags().Lookup("stats"))
	rootCmd.Flags().StringVarP(&reportFile, "report", "r", "", "Write a detailed CSV report to this path")
	viper.BindPFlag("report", rootCmd.Flags().Lookup("report"))
	rootCmd.Flags().StringVar(&pdfFile, "pdf", "", "Write a PDF report to this path")
	viper.BindPFlag("pdf", rootCmd.Flags().Lookup("pdf"))
	rootCmd.Flags().BoolVarP(&copyToClipboard, "clipboard", "c", false, "Copy the output to the clipboard instead of printing it")
	viper.BindPFlag("clipboard", rootCmd.Flags().Lookup("clipboard"))

	viper.SetDefault("encoding", defaultEncoding)
	viper.SetDefault("tokenizer", "tiktoken")
	viper.SetDefault("max_workers", defaultWorkers)
}

// initConfig layers configuration: defaults < config file < env < flags.
func initConfig() {
	home, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "tokenscope"))
	}
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	viper.SetEnvPrefix("TOKENSCOPE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
	}

	// Pull config/env values into flag variables for flags the user did not
	// set explicitly. Every bound flag is read back here; for unset keys
	// viper returns the flag's own default, so this is a no-op without a
	// config file or environment override.
	flags := rootCmd.Flags()
	if !flags.Changed("filter") {
		includePatterns = viper.GetString("filter")
	}
	if !flags.Changed("exclude") {
		excludePatterns = viper.GetString("exclude")
	}
	if !flags.Changed("max-size") {
		maxSizeBytes = viper.GetInt64("max_size")
	}
	if !flags.Changed("max-depth") {
		maxDepth = viper.GetInt("max_depth")
	}
	if !flags.Changed("hidden") {
		showHidden = viper.GetBool("hidden")
	}
	if !flags.Changed("no-ignore") {
		noIgnore = viper.GetBool("no_ignore")
	}
	if !flags.Changed("lang-only") {
		langOnly = viper.GetBool("lang_only")
	}
	if !flags.Changed("encoding") {
		encodingName = viper.GetString("encoding")
	}
	if !flags.Changed("model") {
		modelName = viper.GetString("model")
	}
	if !flags.Changed("tokenizer") {
		tokenizerType = viper.GetString("tokenizer")
	}
	if !flags.Changed("tokenizer-file") {
		tokenizerFile = viper.GetString("tokenizer_file")
	}
	if !flags.Changed("max-workers") {
		maxWorkers = viper.GetInt("max_workers")
	}
	if !flags.Changed("quiet") {
		quiet = viper.GetBool("quiet")
	}
	if !flags.Changed("verbose") {
		verbose = viper.GetBool("verbose")
	}
	if !flags.Changed("stats") {
		showStats = viper.GetBool("stats")
	}
	if !flags.Changed("report") {
		reportFile = viper.GetString("report")
	}
	if !flags.Changed("pdf") {
		pdfFile = viper.GetString("pdf")
	}
	if !flags.Changed("clipboard") {
		copyToClipboard = viper.GetBool("clipboard")
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
