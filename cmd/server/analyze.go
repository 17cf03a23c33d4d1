package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/artem13815/atlas/pkg/analysis"
	"github.com/artem13815/atlas/pkg/config"
	"github.com/artem13815/atlas/pkg/logger"
)

const analyzeLongDesc string = `Analyze a case transcription once and print the assistant reply.

The transcription is read from --file ("-" for stdin). Earlier turns may be
supplied as a JSON array of {"role","content"} objects via --history.

Examples:
  atlas analyze --file visit.txt --name Rex --species Canine
  atlas analyze --file visit.txt --question "Differential diagnoses?" --history turns.json`

type analyzeCommander struct {
	file      string
	history   string
	question  string
	consultID string
	patientID string
	name      string
	species   string
}

func newAnalyzeCmd(loadCfg func() config.Config) *cobra.Command {
	cmder := &analyzeCommander{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a transcription from the command line",
		Long:  analyzeLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := cmder.request(cmd)
			if err != nil {
				return err
			}
			return cmder.run(cmd.Context(), loadCfg(), req, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&cmder.file, "file", "f", "", "Transcription file, - for stdin")
	cmd.Flags().StringVar(&cmder.history, "history", "", "JSON file with previous messages")
	cmd.Flags().StringVarP(&cmder.question, "question", "q", "", "Follow-up question")
	cmd.Flags().StringVar(&cmder.consultID, "consult-id", "", "Correlation id for logs")
	cmd.Flags().StringVar(&cmder.patientID, "patient-id", "", "Patient identifier")
	cmd.Flags().StringVar(&cmder.name, "name", "", "Patient name")
	cmd.Flags().StringVar(&cmder.species, "species", "", "Patient species")

	return cmd
}

func (c *analyzeCommander) request(cmd *cobra.Command) (analysis.Request, error) {
	req := analysis.Request{
		ConsultID:        c.consultID,
		FollowUpQuestion: c.question,
	}

	if c.file != "" {
		text, err := readInput(cmd.InOrStdin(), c.file)
		if err != nil {
			return analysis.Request{}, fmt.Errorf("read transcription: %w", err)
		}
		req.Transcription = string(text)
	}

	if c.history != "" {
		raw, err := os.ReadFile(c.history)
		if err != nil {
			return analysis.Request{}, fmt.Errorf("read history: %w", err)
		}
		if err := json.Unmarshal(raw, &req.PreviousMessages); err != nil {
			return analysis.Request{}, fmt.Errorf("parse history: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("patient-id") || flags.Changed("name") || flags.Changed("species") {
		req.PatientInfo = &analysis.PatientInfo{
			PatientID: c.patientID,
			Name:      c.name,
			Species:   c.species,
		}
	}
	return req, nil
}

func (c *analyzeCommander) run(ctx context.Context, cfg config.Config, req analysis.Request, out io.Writer) error {
	// stdout carries the reply only; logs go to stderr.
	log := logger.NewWithWriters(cfg.Debug, os.Stderr)
	defer func() { _ = log.Sync() }()

	uc := analysis.NewService(newGeminiClient(cfg, log, nil), log, nil)
	res, err := uc.Analyze(ctx, req)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, res.Analysis)
	return err
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
