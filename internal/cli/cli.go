// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/catcode/internal/dumper"
	"github.com/temirov/catcode/internal/services/clipboard"
	"github.com/temirov/catcode/internal/tokenizer"
	"github.com/temirov/catcode/internal/utils"
)

const (
	rootUse              = "catcode"
	rootShortDescription = "dump a project tree and its file contents into one text file"
	rootLongDescription  = `catcode walks the current directory, skips a fixed set of names
(.git, node_modules, venv and similar) and writes every remaining file's
absolute path and text into ` + dumper.DefaultOutputFileName + `. Directories are listed too.
Empty, binary and unreadable files are reported with a marker instead of content.
Every written line is echoed to the console.`
	rootUsageExample = `  # Dump the current directory
  catcode

  # Dump and copy the report to the clipboard
  catcode --copy

  # Dump and estimate the report size in tokens
  catcode --tokens --model gpt-4o`

	versionFlagName        = "version"
	versionFlagDescription = "display application version"
	versionTemplate        = "catcode version: %s\n"
	tokensFlagName         = "tokens"
	tokensFlagDescription  = "estimate the token count of the finished report"
	modelFlagName          = "model"
	modelFlagDescription   = "tokenizer model to use for token counting"

	tokenSummaryFormat          = "Report tokens: %d (%s)\n"
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	warningTokenCountMessage    = "failed to count report tokens"
	warningClipboardMessage     = "failed to copy report to clipboard"
	copiedToClipboardMessage    = "Report copied to clipboard"
)

// CounterFactory builds a token counter for a model name.
type CounterFactory func(model string) (tokenizer.Counter, string, error)

// Dependencies holds the collaborators of the root command.
type Dependencies struct {
	Logger         *zap.Logger
	Copier         clipboard.Copier
	CounterFactory CounterFactory
}

// runOptions stores the parsed flags of the root command.
type runOptions struct {
	showVersion bool
	copyReport  bool
	countTokens bool
	tokenModel  string
}

// Execute runs the catcode application using process arguments.
func Execute(logger *zap.Logger) error {
	rootCommand := createRootCommand(Dependencies{
		Logger:         logger,
		Copier:         clipboard.NewService(),
		CounterFactory: tokenizer.NewCounter,
	})
	rootCommand.SetArgs(normalizeCopyFlagArguments(os.Args[1:]))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(dependencies Dependencies) *cobra.Command {
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	options := runOptions{tokenModel: tokenizer.DefaultModel}

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return nil
			}
			return runDump(command.OutOrStdout(), dependencies, options)
		},
	}
	rootCommand.Flags().BoolVar(&options.showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.Flags().BoolVar(&options.countTokens, tokensFlagName, false, tokensFlagDescription)
	rootCommand.Flags().StringVar(&options.tokenModel, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	registerCopyFlag(rootCommand.Flags(), &options.copyReport)
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// runDump writes the report for the working directory and runs the optional
// token and clipboard steps. Failures of the optional steps are only logged.
func runDump(console io.Writer, dependencies Dependencies, options runOptions) error {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}

	outputPath := dumper.DefaultOutputFileName
	treeDumper := dumper.New(dumper.DefaultExcludeNames, console, dependencies.Logger)
	if dumpError := treeDumper.Dump(workingDirectory, outputPath); dumpError != nil {
		return dumpError
	}

	if options.countTokens {
		reportTokens(console, dependencies, options.tokenModel, outputPath)
	}
	if options.copyReport && dependencies.Copier != nil {
		if copyError := clipboard.CopyFile(dependencies.Copier, outputPath); copyError != nil {
			dependencies.Logger.Warn(warningClipboardMessage, zap.Error(copyError))
		} else {
			fmt.Fprintln(console, copiedToClipboardMessage)
		}
	}
	return nil
}

func reportTokens(console io.Writer, dependencies Dependencies, model string, outputPath string) {
	if dependencies.CounterFactory == nil {
		return
	}
	counter, resolvedModel, counterError := dependencies.CounterFactory(model)
	if counterError != nil {
		dependencies.Logger.Warn(warningTokenCountMessage, zap.String("model", model), zap.Error(counterError))
		return
	}
	countResult, countError := tokenizer.CountFile(counter, outputPath)
	if countError != nil {
		dependencies.Logger.Warn(warningTokenCountMessage, zap.String("path", outputPath), zap.Error(countError))
		return
	}
	if countResult.Counted {
		fmt.Fprintf(console, tokenSummaryFormat, countResult.Tokens, resolvedModel)
	}
}
