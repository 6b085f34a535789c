package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/skillpathlabs/personalization/internal/contextstore"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Ingest interaction events from a JSONL file or stdin",
	Long: `Ingest interaction events, one JSON object per line:

  {"user_id":"u1","type":"activity","source":"tracker","content":"...","metadata":{"rating":5}}

Examples:
  # Ingest a file
  personalctl ingest events.jsonl

  # Ingest from stdin
  cat events.jsonl | personalctl ingest -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

// ingestEvent is one line of JSONL input.
type ingestEvent struct {
	UserID   string         `json:"user_id"`
	Type     string         `json:"type"`
	Source   string         `json:"source"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func runIngest(cmd *cobra.Command, args []string) error {
	var input io.Reader = os.Stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open events file: %w", err)
		}
		defer f.Close()
		input = f
	}

	eng, logger, cleanup, err := newEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line, stored := 0, 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var event ingestEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			return fmt.Errorf("line %d: invalid JSON: %w", line, err)
		}

		record, err := eng.Emit(ctx, event.UserID, contextstore.RecordType(event.Type),
			event.Source, event.Content, event.Metadata)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		stored++
		logger.Debug(ctx, "stored record",
			zap.String("record_id", record.ID),
			zap.String("user_id", record.UserID),
			zap.String("type", string(record.Type)))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading events: %w", err)
	}

	fmt.Fprintf(os.Stdout, "ingested %d events\n", stored)
	return nil
}
