package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"finecron/schedule"
)

var (
	checkFile string
	checkJSON bool
)

var checkCmd = &cobra.Command{
	Use:   "check [EXPR...]",
	Short: "Validate schedule expressions",
	Long: `Parses each expression and reports the result. Expressions come from
arguments, or one per line from --file ("-" for stdin). Exits non-zero
if any expression is invalid.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkFile, "file", "f", "", `read expressions from a file, one per line ("-" for stdin)`)
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "emit one JSON object per expression")
	rootCmd.AddCommand(checkCmd)
}

type checkResult struct {
	Expr   string           `json:"expr"`
	OK     bool             `json:"ok"`
	Error  string           `json:"error,omitempty"`
	Offset *int             `json:"offset,omitempty"`
	Format *schedule.Format `json:"format,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	exprs := args
	if checkFile != "" {
		lines, err := readExprLines(checkFile, cmd.InOrStdin())
		if err != nil {
			return err
		}
		exprs = append(exprs, lines...)
	}
	if len(exprs) == 0 {
		return errors.New("no expressions given")
	}

	okMark := color.New(color.FgGreen).Sprint("OK  ")
	failMark := color.New(color.FgRed).Sprint("FAIL")
	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)

	bad := 0
	for _, expr := range exprs {
		f, err := schedule.Parse(expr)
		if err != nil {
			bad++
		}
		if checkJSON {
			res := checkResult{Expr: expr, OK: err == nil}
			if err != nil {
				res.Error = err.Error()
				var pe *schedule.ParseError
				if errors.As(err, &pe) {
					off := pe.Offset
					res.Offset = &off
				}
			} else {
				res.Format = &f
			}
			if err := enc.Encode(res); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			fmt.Fprintf(out, "%s %s: %v\n", failMark, expr, err)
		} else {
			fmt.Fprintf(out, "%s %s\n", okMark, expr)
		}
	}
	if bad > 0 {
		return fmt.Errorf("%d of %d expressions invalid", bad, len(exprs))
	}
	return nil
}

func readExprLines(path string, stdin io.Reader) ([]string, error) {
	var r io.Reader
	if path == "-" {
		r = stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, sc.Err()
}
