package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pravaah/internal/export"
	"pravaah/internal/service"
)

type services struct {
	Processing  service.ProcessingService
	Dashboard   service.DashboardService
	ReviewQueue service.ReviewQueueService
}

// openFunc builds the services and returns a func releasing their backends.
type openFunc func(ctx context.Context) (*services, func(), error)

func newRootCmd(open openFunc) *cobra.Command {
	root := &cobra.Command{
		Use:          "pravaahctl",
		Short:        "Operate the Pravaah document pipeline",
		SilenceUsage: true,
	}

	// withServices opens the backends for the duration of one command.
	withServices := func(run func(cmd *cobra.Command, args []string, s *services) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			s, closeFn, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			return run(cmd, args, s)
		}
	}

	root.AddCommand(
		newProcessCmd(withServices),
		newResolveCmd(withServices),
		newQueueCmd(withServices),
		newExportCmd(withServices),
	)
	return root
}

type wrapFunc func(run func(cmd *cobra.Command, args []string, s *services) error) func(*cobra.Command, []string) error

func newProcessCmd(with wrapFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "process <file>",
		Short: "Run a document through the pipeline and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: with(func(cmd *cobra.Command, args []string, s *services) error {
			upload, closeFile, err := openUpload(args[0])
			if err != nil {
				return err
			}
			defer closeFile()

			result, err := s.Processing.Process(cmd.Context(), upload)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		}),
	}
}

func newResolveCmd(with wrapFunc) *cobra.Command {
	var docType, remove string
	cmd := &cobra.Command{
		Use:   "resolve <file>",
		Short: "Re-extract a queued document under the reviewer's chosen type",
		Args:  cobra.ExactArgs(1),
		RunE: with(func(cmd *cobra.Command, args []string, s *services) error {
			upload, closeFile, err := openUpload(args[0])
			if err != nil {
				return err
			}
			defer closeFile()

			if remove == "" {
				remove = filepath.Base(args[0])
			}
			result, err := s.Processing.Resolve(cmd.Context(), upload, docType, remove)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		}),
	}
	cmd.Flags().StringVar(&docType, "type", "", "correct document type (Invoice, Claim Form, Inspection Report)")
	cmd.Flags().StringVar(&remove, "remove", "", "queue filename to remove (defaults to the file's base name)")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newQueueCmd(with wrapFunc) *cobra.Command {
	queue := &cobra.Command{
		Use:   "queue",
		Short: "Inspect and prune the human review queue",
	}

	queue.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List documents awaiting review",
		Args:  cobra.NoArgs,
		RunE: with(func(cmd *cobra.Command, _ []string, s *services) error {
			entries, err := s.ReviewQueue.List(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FILENAME\tAI GUESS\tCONFIDENCE")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Filename, e.AIGuess, e.Confidence)
			}
			return tw.Flush()
		}),
	})

	queue.AddCommand(&cobra.Command{
		Use:   "remove <filename>",
		Short: "Drop every queue row for a filename",
		Args:  cobra.ExactArgs(1),
		RunE: with(func(cmd *cobra.Command, args []string, s *services) error {
			n, err := s.ReviewQueue.Remove(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d row(s) for %s\n", n, args[0])
			return nil
		}),
	})
	return queue
}

func newExportCmd(with wrapFunc) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export processed-document logs as CSV or XLSX",
		Args:  cobra.NoArgs,
		RunE: with(func(cmd *cobra.Command, _ []string, s *services) error {
			if format != "csv" && format != "xlsx" {
				return fmt.Errorf("unsupported format %q", format)
			}
			records, err := s.Dashboard.Records(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			if format == "xlsx" {
				return export.WriteXLSX(w, records)
			}
			return export.WriteCSV(w, records)
		}),
	}
	cmd.Flags().StringVar(&format, "format", "csv", "csv or xlsx")
	cmd.Flags().StringVarP(&out, "output", "o", "", "write to a file instead of stdout")
	return cmd
}

func openUpload(path string) (service.Upload, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return service.Upload{}, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return service.Upload{}, nil, err
	}
	return service.Upload{Filename: filepath.Base(path), Body: f, Size: info.Size()}, func() { f.Close() }, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
