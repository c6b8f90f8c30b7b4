package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/fiblike/internal/config"
	"github.com/agbru/fiblike/internal/engine"
	"github.com/agbru/fiblike/internal/ui"
)

// PrintExecutionConfig prints what is about to be computed.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	th := ui.GetCurrentTheme()
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	var what string
	switch cfg.Mode {
	case config.ModeFind:
		what = fmt.Sprintf("Looking up %s%s%s in the %s", th.Info, cfg.Target, th.Reset, SequenceName(cfg))
	case config.ModeList:
		what = fmt.Sprintf("Listing the first %s%d%s terms of the %s", th.Info, cfg.N, th.Reset, SequenceName(cfg))
	default:
		what = fmt.Sprintf("Calculating term %s%d%s of the %s", th.Info, cfg.N, th.Reset, SequenceName(cfg))
	}
	fmt.Fprintf(out, "%s with a timeout of %s%s%s.\n", what, th.Warning, cfg.Timeout, th.Reset)
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		th.Primary, runtime.NumCPU(), th.Reset, th.Primary, runtime.Version(), th.Reset)
}

// PrintExecutionMode prints whether one backend runs or several are compared.
func PrintExecutionMode(engines []engine.Engine, out io.Writer) {
	th := ui.GetCurrentTheme()
	mode := "Parallel comparison of all numeric backends"
	if len(engines) == 1 {
		mode = fmt.Sprintf("Single computation with the %s%s%s backend", th.Success, engines[0].Name(), th.Reset)
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", mode)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
