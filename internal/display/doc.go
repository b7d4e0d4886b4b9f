// Package display renders plans, reports and warnings for the terminal.
//
// Printer formats deletion plans, scan reports, merge plans and run summaries.
// Colors come from fatih/color and are enabled per Printer, so output written
// to a pipe or a test buffer stays plain:
//
//	p := display.NewPrinter(os.Stdout, isatty.IsTerminal(os.Stdout.Fd()))
//	p.DeletionPlans(plans)
//	p.DedupeSummary(report)
//
// Sizes are printed with FormatSize (1024-based, one decimal place):
//
//	display.FormatSize(1536) // "1.5 KB"
//
// Warning blocks call out items that need manual follow-up, such as merge
// conflicts or unreadable files. ProgressIndicator prints one line per hashed
// file in verbose runs.
package display
