package commands

import (
	"log/slog"
	"time"

	"sisuva-scraper/internal/catalogdb"
	"sisuva-scraper/internal/serviceutil"
	"sisuva-scraper/internal/sis"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(departmentsCmd)
}

var departmentsCmd = &cobra.Command{
	Use:   "departments <yy> <fall|spring>",
	Short: "Fetches the mnemonics of every department offering classes in a term.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		year, err := sis.ParseYear(args[0])
		if err != nil {
			serviceutil.Fatal("invalid year", err)
		}
		term, err := sis.Validate(year, args[1])
		if err != nil {
			serviceutil.Fatal("invalid term", err)
		}

		service := newService()
		mnemonics, err := service.ListDepartments(cmd.Context(), year, args[1])
		if err != nil {
			serviceutil.Fatal("failed to list departments", err)
		}
		slog.Info("wrote departments", "path", service.DepartmentsPath(), "count", len(mnemonics))

		if config.Db != "" {
			store, closeStore := openStore(config.Db)
			defer closeStore()
			err = store.SaveDepartments(cmd.Context(), term, mnemonics, time.Now())
			if err != nil {
				serviceutil.Fatal("failed to save departments", err)
			}
		}

		if *showTable {
			t := newTable(cmd)
			t.AppendHeader(table.Row{"#", "Mnemonic"})
			for i, m := range mnemonics {
				t.AppendRow(table.Row{i + 1, m})
			}
			t.Render()
		}
	},
}

func openStore(path string) (catalogdb.Store, func()) {
	database, err := catalogdb.OpenDB(path)
	if err != nil {
		serviceutil.Fatal("failed to open db", err)
	}
	return catalogdb.NewStore(database), func() {
		database.Close()
	}
}
