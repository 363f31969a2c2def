package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// OutputConfig holds global output settings
type OutputConfig struct {
	JSON  bool
	Quiet bool
}

var outputCfg OutputConfig

// parseGlobalFlags extracts --json and --quiet from args, returns remaining args
func parseGlobalFlags(args []string) []string {
	var remaining []string
	for _, arg := range args {
		switch arg {
		case "--json":
			outputCfg.JSON = true
		case "--quiet", "-q":
			outputCfg.Quiet = true
		default:
			remaining = append(remaining, arg)
		}
	}
	return remaining
}

// PrintResult outputs data based on output config
func PrintResult(data any) {
	if outputCfg.JSON {
		writeJSON(data)
		return
	}

	switch v := data.(type) {
	case string:
		fmt.Println(v)
	case []string:
		for _, s := range v {
			fmt.Println(s)
		}
	default:
		writeJSON(data)
	}
}

func writeJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

// formatTable lays rows out in padded columns under headers.
func formatTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len([]rune(h))
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len([]rune(cell)) > widths[i] {
				widths[i] = len([]rune(cell))
			}
		}
	}

	var b strings.Builder
	line := func(cells []string) {
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[i]-len([]rune(cell))+2))
		}
		b.WriteString("\n")
	}

	line(headers)
	sep := make([]string, len(headers))
	for i := range headers {
		sep[i] = strings.Repeat("-", widths[i])
	}
	line(sep)
	for _, row := range rows {
		line(row)
	}
	return b.String()
}

// PrintTable outputs tabular data
func PrintTable(headers []string, rows [][]string) {
	if outputCfg.JSON {
		result := make([]map[string]string, len(rows))
		for i, row := range rows {
			m := make(map[string]string)
			for j, h := range headers {
				if j < len(row) {
					m[h] = row[j]
				}
			}
			result[i] = m
		}
		writeJSON(result)
		return
	}
	fmt.Print(formatTable(headers, rows))
}

// PrintInfo prints info message if not quiet
func PrintInfo(format string, args ...any) {
	if !outputCfg.Quiet && !outputCfg.JSON {
		fmt.Printf(format, args...)
	}
}

// PrintError prints error to stderr
func PrintError(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format, args...)
}
