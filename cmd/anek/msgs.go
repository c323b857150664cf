package anek

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Run command templates against sets of variables"
	MsgNewShort        = "Make a new anek configuration"
	MsgVariableShort   = "Scan, describe and update variables"
	MsgListShort       = "List the files of the configuration"
	MsgEditShort       = "Edit a file of the configuration"
	MsgShowShort       = "Print a file of the configuration"
	MsgViewShort       = "Print the directory of the configuration"
	MsgRunShort        = "Run a command or pipeline for every job"
	MsgRenderShort     = "Render a template for every job"
	MsgExportShort     = "Tabulate variables across jobs"
	MsgReportShort     = "Generate a markdown report of the configuration"
	MsgGraphShort      = "Print the configuration as a DOT graph"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	MsgNewLong = "Make the .anek directory and its sub-directories in the given path, " +
		"the current directory by default. Names given with --variables get an empty variable file."
	MsgEditLong = "Open a file of the .anek directory in $EDITOR, or the editor from the " +
		"configuration. The path is relative to .anek, as printed by list."
	MsgShowLong = "Print a file of the .anek directory. The path is relative to .anek, as " +
		"printed by list. Command files are highlighted as templates."

	// Status messages
	MsgCreated       = "Created %s\n"
	MsgNewVariable   = "%s: %s"
	MsgWaitingInput  = "Waiting for input..."
	MsgGenerating    = "Generating report %s for %s"
	MsgEditing       = "%s %s"
	MsgVersionFormat = "anek version %s\n  commit: %s\n  built:  %s\n"
	MsgWatching      = "Watching for changes, Ctrl-C to stop"

	// Error messages
	MsgErrCommandsFailed = "%d of %d commands failed"
	MsgErrNoCommand      = "no command specified"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagQuiet     = "Don't print the start time and time elapsed"
	MsgFlagChdir     = "Run as if anek was started in this directory"
	MsgFlagNoColor   = "Disable colored output"
	MsgFlagInput     = "Input files to merge into a single job"
	MsgFlagBatch     = "Batch files, one job per line"
	MsgFlagLoop      = "Loop to run every combination of"
	MsgFlagSelect    = "Select batch lines or loop combinations (e.g. 1,3-5)"
	MsgFlagOverwrite = "Overwrite variables (name=value)"
	MsgFlagTemplate  = "The argument is a template instead of a name"
	MsgFlagPipeline  = "The argument is a pipeline name"
	MsgFlagDemo      = "Print the commands without running them"
	MsgFlagPipable   = "Print only the commands, for piping to a shell"
	MsgFlagCheck     = "Check the shell syntax of the commands without running them"
	MsgFlagStored    = "The argument is a template name under .anek/templates"
	MsgFlagWatch     = "Render again when the template or the configuration changes"
	MsgFlagVariables = "Variable names to create empty variable files for"
	MsgFlagAll       = "List files inside drop-in (.d) directories"
	MsgFlagFilter    = "Keep names matching a substring or glob pattern"
	MsgFlagSearch    = "Print the lines containing the terms"
	MsgFlagHas       = "Keep files referring to the names"
	MsgFlagFilename  = "Report file name, without extension"
	MsgFlagPrint     = "Render the report to the terminal instead of writing it"
	MsgFlagVars      = "Variables to export, in column order"
	MsgFlagFormat    = "Output format: %s"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/run-long.txt
	msgRunLongRaw string
	MsgRunLong    = strings.TrimSpace(msgRunLongRaw)

	//go:embed msgs/run-example.txt
	msgRunExampleRaw string
	MsgRunExample    = strings.TrimRight(msgRunExampleRaw, "\n")

	//go:embed msgs/render-long.txt
	msgRenderLongRaw string
	MsgRenderLong    = strings.TrimSpace(msgRenderLongRaw)

	//go:embed msgs/render-example.txt
	msgRenderExampleRaw string
	MsgRenderExample    = strings.TrimRight(msgRenderExampleRaw, "\n")

	//go:embed msgs/list-long.txt
	msgListLongRaw string
	MsgListLong    = strings.TrimSpace(msgListLongRaw)

	//go:embed msgs/variable-long.txt
	msgVariableLongRaw string
	MsgVariableLong    = strings.TrimSpace(msgVariableLongRaw)

	//go:embed msgs/report-long.txt
	msgReportLongRaw string
	MsgReportLong    = strings.TrimSpace(msgReportLongRaw)

	//go:embed msgs/graph-long.txt
	msgGraphLongRaw string
	MsgGraphLong    = strings.TrimSpace(msgGraphLongRaw)

	//go:embed msgs/export-long.txt
	msgExportLongRaw string
	MsgExportLong    = strings.TrimSpace(msgExportLongRaw)

	//go:embed msgs/export-example.txt
	msgExportExampleRaw string
	MsgExportExample    = strings.TrimRight(msgExportExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
