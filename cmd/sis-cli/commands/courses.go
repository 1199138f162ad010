package commands

import (
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"sisuva-scraper/internal/serviceutil"
	"sisuva-scraper/internal/sis"
	"sisuva-scraper/internal/textutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

const report_courses_empty = "courses.empty"

func init() {
	rootCmd.AddCommand(coursesCmd)
}

var coursesCmd = &cobra.Command{
	Use:   "courses <yy> <fall|spring> <department>",
	Short: "Fetches the sections of a department numbered 4999 and below.",
	Long: "Fetches the sections of a department numbered 4999 and below.\n\n" +
		"Only the first page of the class search is read, departments with more sections than fit " +
		"on a page are cut short.",
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		year, err := sis.ParseYear(args[0])
		if err != nil {
			serviceutil.Fatal("invalid year", err)
		}
		term, err := sis.Validate(year, args[1])
		if err != nil {
			serviceutil.Fatal("invalid term", err)
		}
		department := args[2]

		service := newService()
		records, err := service.ListCourses(cmd.Context(), year, args[1], department)
		if err != nil {
			serviceutil.Fatal("failed to list courses", err)
		}
		slog.Info("wrote courses", "path", service.CoursesPath(department, term), "count", len(records))

		if len(records) == 0 {
			suggestions := suggestDepartments(service.DepartmentsPath(), department)
			if len(suggestions) > 0 {
				tel.ReportWarning(report_courses_empty, department, suggestions)
			}
		}

		if config.Db != "" {
			store, closeStore := openStore(config.Db)
			defer closeStore()
			err = store.SaveCourses(cmd.Context(), term, department, records, time.Now())
			if err != nil {
				serviceutil.Fatal("failed to save courses", err)
			}
		}

		if *showTable {
			t := newTable(cmd)
			t.AppendHeader(table.Row{"Index", "Course", "Description", "Instructor", "Units", "Days", "Time", "Facility", "Capacity"})
			for _, r := range records {
				t.AppendRow(table.Row{
					r.Index,
					r.Subject + " " + r.CatalogNumber,
					r.Description,
					r.Instructor,
					r.Units,
					r.Days,
					r.StartTime + " - " + r.EndTime,
					r.Facility,
					r.ClassCapacity,
				})
			}
			t.Render()
		}
	},
}

// suggestDepartments looks for mnemonics close to department in a previously written
// department listing, it returns nothing if there is no such listing.
func suggestDepartments(listingPath, department string) []string {
	contents, err := os.ReadFile(listingPath)
	if err != nil {
		return nil
	}
	var mnemonics []string
	err = json.Unmarshal(contents, &mnemonics)
	if err != nil {
		slog.Debug("unreadable department listing", "path", listingPath, "err", err)
		return nil
	}
	for _, m := range mnemonics {
		if m == department {
			return nil
		}
	}
	return textutil.ClosestMatches(department, mnemonics, 3, 0.8)
}
