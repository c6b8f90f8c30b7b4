package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/agbru/fiblike/internal/ui"
)

// setCustomUsage installs a themed usage function on fs.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		t := ui.GetCurrentTheme()
		if ui.ColorsDisabled(false, os.Stderr) {
			t = ui.NoColorTheme
		}
		out := fs.Output()

		fmt.Fprintf(out, "\n%sfiblike%s\n", t.Bold, t.Reset)
		fmt.Fprintf(out, "Terms and positions of second-order recurrence sequences.\n\n")
		fmt.Fprintf(out, "%sUsage:%s\n  %s [flags] <number>\n\n", t.Warning, t.Reset, fs.Name())
		fmt.Fprintf(out, "%sExamples:%s\n", t.Warning, t.Reset)
		fmt.Fprintf(out, "  %s 500                      500th Fibonacci number\n", fs.Name())
		fmt.Fprintf(out, "  %s --mode find 610          position of 610\n", fs.Name())
		fmt.Fprintf(out, "  %s --seed 2,1 --mode list 10\n\n", fs.Name())
		fmt.Fprintf(out, "%sFlags:%s\n", t.Warning, t.Reset)

		fs.VisitAll(func(f *flag.Flag) {
			name, usage := flag.UnquoteUsage(f)
			sig := "-" + f.Name
			if name != "" {
				sig += " " + name
			}
			fmt.Fprintf(out, "  %s%-22s%s %s", t.Primary, sig, t.Reset, usage)
			if f.DefValue != "" && f.DefValue != "0" && f.DefValue != "false" {
				fmt.Fprintf(out, " %s(default %s)%s", t.Secondary, f.DefValue, t.Reset)
			}
			fmt.Fprintln(out)
		})
		fmt.Fprintf(out, "\nEvery flag can also be set with a %s<NAME> environment variable.\n\n", EnvPrefix)
	}
}
