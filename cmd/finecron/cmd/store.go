package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"finecron/internal/storage"
)

var addCmd = &cobra.Command{
	Use:   "add NAME EXPR",
	Short: "Validate and store a named schedule",
	Args:  cobra.ExactArgs(2),
	RunE:  runAdd,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored schedules",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var rmCmd = &cobra.Command{
	Use:   "rm NAME",
	Short: "Remove a stored schedule",
	Args:  cobra.ExactArgs(1),
	RunE:  runRm,
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(rmCmd)
}

func openStore() (*storage.Store, error) {
	return storage.Open(storage.Config{
		Path:        flagDB,
		BusyTimeout: 5 * time.Second,
	}, newLogger())
}

func runAdd(cmd *cobra.Command, args []string) error {
	name, expr := args[0], args[1]
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Put(cmd.Context(), name, expr); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "stored %q = %q\n", name, expr)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	defs, err := st.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(defs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no schedules stored")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tEXPR\tUPDATED")
	for _, d := range defs {
		fmt.Fprintf(w, "%s\t%s\t%s\n", d.Name, d.Expr, d.UpdatedAt.Local().Format(time.RFC3339))
	}
	return w.Flush()
}

func runRm(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed %q\n", args[0])
	return nil
}
