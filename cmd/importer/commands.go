package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/yigit/timetabler/internal/app/models/dto"
	"github.com/yigit/timetabler/internal/app/services"
	"github.com/yigit/timetabler/internal/bootstrap"
	"github.com/yigit/timetabler/internal/pkg/timetable"
)

func readDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func detectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect <file>",
		Short: "Print the grammar a document is read with",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readDocument(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), timetable.Detect(timetable.Normalize(text)))
			return nil
		},
	}
}

func previewCmd() *cobra.Command {
	var (
		format  string
		kind    string
		asJSON  bool
		maxSize int
	)

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "List the entries recognized in a document",
		Long: `Parse a document without touching the database.

Example:
  timetabler preview exams.txt
  timetabler preview --kind session --format heuristic classes.txt --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readDocument(args[0])
			if err != nil {
				return err
			}
			resp, err := services.BuildPreview(&dto.PreviewRequest{Text: text, Format: format, Kind: kind}, maxSize)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			return writePreview(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVar(&format, "format", "auto", "Grammar: auto, tabular or heuristic")
	cmd.Flags().StringVar(&kind, "kind", "exam", "Record kind: exam or session")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print rows as JSON")
	cmd.Flags().IntVar(&maxSize, "max-bytes", 0, "Reject documents larger than this (0 for no limit)")
	return cmd
}

func importCmd() *cobra.Command {
	var (
		configPath string
		format     string
		kind       string
		status     string
		programme  string
		yearLevel  int
		semester   int
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Preview a document and commit its entries",
		Long: `Parse a document and write its entries to the configured database.
Rows that are duplicates or fail validation are skipped and listed.

Example:
  timetabler import exams.txt --status final
  timetabler import classes.txt --kind session --programme "Bachelor of Commerce" --year-level 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readDocument(args[0])
			if err != nil {
				return err
			}

			cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
			if err != nil {
				return err
			}

			preview, err := services.BuildPreview(&dto.PreviewRequest{Text: text, Format: format, Kind: kind}, cfg.Import.MaxTextBytes)
			if err != nil {
				return err
			}

			dbPool, err := bootstrap.SetupDatabase(cfg, lgr)
			if err != nil {
				return err
			}
			defer dbPool.Close()

			deps, err := bootstrap.BuildDependencies(cfg, dbPool, lgr)
			if err != nil {
				return err
			}

			req := &dto.CommitRequest{
				Kind:      preview.Kind,
				Status:    status,
				Programme: programme,
				Rows:      preview.Rows,
			}
			if cmd.Flags().Changed("year-level") {
				req.YearLevel = &yearLevel
			}
			if cmd.Flags().Changed("semester") {
				req.Semester = &semester
			}

			resp, err := deps.ImportService.Commit(context.Background(), req)
			if err != nil {
				return err
			}
			return writeSummary(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Config file (default $CONFIG_PATH or "+bootstrap.DefaultConfigPath+")")
	cmd.Flags().StringVar(&format, "format", "auto", "Grammar: auto, tabular or heuristic")
	cmd.Flags().StringVar(&kind, "kind", "exam", "Record kind: exam or session")
	cmd.Flags().StringVar(&status, "status", "", "Exam status: draft or final (default from config)")
	cmd.Flags().StringVar(&programme, "programme", "", "Programme the sessions belong to")
	cmd.Flags().IntVar(&yearLevel, "year-level", 0, "Year level of the sessions")
	cmd.Flags().IntVar(&semester, "semester", 0, "Semester of the sessions")
	return cmd
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writePreview(w io.Writer, resp *dto.PreviewResponse) error {
	fmt.Fprintf(w, "Format: %s  Kind: %s  Entries: %d\n\n", resp.Format, resp.Kind, resp.Total)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MODULE\tDATE\tDAY\tSTART\tEND\tMIN\tVENUE\tLECTURER")
	for _, r := range resp.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			r.ModuleCode, dash(r.ExamDate), dash(r.Weekday), r.ExamTime, dash(r.EndTime),
			r.Duration, dash(r.Venue), dash(r.Lecturer))
	}
	return tw.Flush()
}

func writeSummary(w io.Writer, resp *dto.CommitResponse) error {
	fmt.Fprintf(w, "Run %s (%s): %d rows, %d created, %d skipped\n",
		resp.RunID, resp.Kind, resp.Total, resp.Created, resp.Skipped)
	if resp.Kind == string(timetable.KindExam) {
		fmt.Fprintf(w, "Notifications: %d recorded, %d failed\n",
			resp.Notifications.Sent, len(resp.Notifications.Failed))
	}
	if len(resp.SkipReasons) == 0 {
		return nil
	}

	fmt.Fprintln(w, "\nSkipped:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, s := range resp.SkipReasons {
		fmt.Fprintf(tw, "  row %d\t%s\t%s\t%s\t%s\t%s\t%s\n", s.Row, dash(s.ModuleCode),
			dash(s.ExamDate), dash(s.Weekday), dash(s.ExamTime), dash(s.Venue), s.Reason)
	}
	return tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
