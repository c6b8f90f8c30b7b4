package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a flag for the completion scripts. Every script is
// generated from flagRegistry.
type FlagCompletion struct {
	Long      string   // long name without "--"
	Short     string   // short name without "-"
	Help      string   // description
	Values    []string // suggested values, nil for booleans
	ValueName string   // value label in zsh
	IsFile    bool     // completes file paths
	IsNumeric bool     // completes the registered numeric backends
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Help: "Show version information"},
	{Long: "mode", Help: "What to compute", Values: []string{"term", "find", "list"}, ValueName: "mode"},
	{Long: "numeric", Help: "Numeric backend", IsNumeric: true, ValueName: "numeric"},
	{Long: "seed", Help: "First two terms", Values: []string{"1,1", "2,1", "0,1"}, ValueName: "seed"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"10s", "1m", "5m"}, ValueName: "duration"},
	{Long: "quiet", Short: "q", Help: "Print only the result"},
	{Long: "details", Short: "d", Help: "Show details and memory stats"},
	{Long: "output", Short: "o", Help: "Output file path", IsFile: true, ValueName: "file"},
	{Long: "no-color", Help: "Disable colours"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level"},
	{Long: "server", Help: "Run the HTTP server"},
	{Long: "port", Help: "HTTP port", Values: []string{"8080"}, ValueName: "port"},
	{Long: "cache-size", Help: "Server result cache size", ValueName: "entries"},
	{Long: "max-n", Help: "Largest position accepted by the server", ValueName: "number"},
	{Long: "tui", Help: "Interactive mode"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell"},
}

// GenerateCompletion writes the completion script for shell. numerics are the
// registered backend names.
func GenerateCompletion(out io.Writer, shell string, numerics []string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(numerics)
	case "zsh":
		script = zshCompletion(numerics)
	case "fish":
		script = fishCompletion(numerics)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
	if _, err := io.WriteString(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

func numericList(numerics []string) string {
	return strings.Join(append(append([]string{}, numerics...), "all"), " ")
}

func bashCompletion(numerics []string) string {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		opts = append(opts, "--"+f.Long)
		patterns := "--" + f.Long
		if f.Short != "" {
			opts = append(opts, "-"+f.Short)
			patterns += "|-" + f.Short
		}
		var reply string
		switch {
		case f.IsNumeric:
			reply = `COMPREPLY=( $(compgen -W "${numerics}" -- "${cur}") )`
		case f.IsFile:
			reply = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case len(f.Values) > 0:
			reply = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " "))
		default:
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n            %s\n            return 0\n            ;;\n", patterns, reply)
	}

	return fmt.Sprintf(`# Bash completion script for fiblike
# Add this to your ~/.bashrc or ~/.bash_completion

_fiblike_completions() {
    local cur prev opts numerics
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%s"
    numerics="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _fiblike_completions fiblike
`, strings.Join(opts, " "), numericList(numerics), cases.String())
}

func zshArgEntry(f FlagCompletion) string {
	var suffix string
	switch {
	case f.IsFile:
		suffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case f.IsNumeric:
		suffix = fmt.Sprintf(":%s:($numerics)", f.ValueName)
	case len(f.Values) > 0:
		suffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		suffix = fmt.Sprintf(":%s:", f.ValueName)
	}
	if f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, f.Help, suffix)
	}
	return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, suffix)
}

func zshCompletion(numerics []string) string {
	args := make([]string, 0, len(flagRegistry)+1)
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}
	args = append(args, "        '1:number:'")

	return fmt.Sprintf(`#compdef fiblike

# Zsh completion script for fiblike
# Place this file in your $fpath as _fiblike

_fiblike() {
    local -a numerics
    numerics=(%s)

    _arguments -s \
%s
}

_fiblike "$@"
`, numericList(numerics), strings.Join(args, " \\\n"))
}

func fishCompletion(numerics []string) string {
	var b strings.Builder
	b.WriteString("# Fish completion script for fiblike\n")
	b.WriteString("# Add this to ~/.config/fish/completions/fiblike.fish\n\n")
	b.WriteString("complete -c fiblike -f\n")
	for _, f := range flagRegistry {
		line := "complete -c fiblike -l " + f.Long
		if f.Short != "" {
			line += " -s " + f.Short
		}
		switch {
		case f.IsNumeric:
			line += fmt.Sprintf(" -x -a '%s'", numericList(numerics))
		case f.IsFile:
			line += " -r -F"
		case len(f.Values) > 0:
			line += fmt.Sprintf(" -x -a '%s'", strings.Join(f.Values, " "))
		case f.ValueName != "":
			line += " -x"
		}
		line += fmt.Sprintf(" -d '%s'\n", f.Help)
		b.WriteString(line)
	}
	return b.String()
}
