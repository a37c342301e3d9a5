package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"pagewise/internal/app"
	"pagewise/internal/auth"
	"pagewise/internal/config"
	"pagewise/internal/corpus"
	"pagewise/internal/flow"
	"pagewise/internal/prompt"
	"pagewise/internal/runlog"
)

type flowCommand struct {
	op       flow.Operation
	short    string
	example  string
	page     bool
	question bool
}

var flowCommands = []flowCommand{
	{op: flow.OpSummarize, short: "Summarize a page", example: "flowctl summarize --token <token> --page-id p1", page: true},
	{op: flow.OpAsk, short: "Answer a question from your pages and notes", example: `flowctl ask --token <token> --question "What is pending?"`, question: true},
	{op: flow.OpCompose, short: "Compose new content for a page", example: `flowctl compose --token <token> --question "Write an onboarding guide" --page-id p1`, page: true, question: true},
	{op: flow.OpEdit, short: "Rewrite a page from an instruction", example: `flowctl edit --token <token> --page-id p1 --question "Shorten it"`, page: true, question: true},
}

// Dispatcher runs a single flow for an authenticated user.
type Dispatcher interface {
	Dispatch(ctx context.Context, op flow.Operation, uid string, p flow.Payload) (any, error)
}

// newDispatcher connects to the database and model. The returned func releases them.
var newDispatcher = func(ctx context.Context, cfg *config.Config, runOut io.Writer) (Dispatcher, func(), error) {
	db, err := app.OpenDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	gen, err := app.NewGenerator(ctx, cfg)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	svc := flow.NewService(corpus.NewAccessor(corpus.NewPostgresStore(db)), gen, prompt.NewAssembler(cfg.ResponseLanguage))
	d := flow.NewDispatcher(svc, runlog.NewLogger(runOut))

	cleanup := func() {
		if c, ok := gen.(interface{ Close() error }); ok {
			_ = c.Close()
		}
		_ = db.Close()
	}
	return d, cleanup, nil
}

var loadConfig = func() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func NewFlowCmd(fc flowCommand) *cobra.Command {
	var (
		token    string
		pageID   string
		question string
	)

	cmd := &cobra.Command{
		Use:     string(fc.op),
		Short:   fc.short,
		Example: "  " + fc.example,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			uid, err := auth.NewVerifier(cfg.AuthSecret).VerifyToken(token)
			if err != nil {
				return fmt.Errorf("invalid token: %w", err)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			d, cleanup, err := newDispatcher(ctx, cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer cleanup()

			out, err := d.Dispatch(ctx, fc.op, uid, flow.Payload{PageID: pageID, Question: question})
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err != nil {
				res := flow.Public(err)
				if encErr := enc.Encode(map[string]any{"error": res}); encErr != nil {
					return encErr
				}
				return fmt.Errorf("%s failed: %s", fc.op, res.Message)
			}
			return enc.Encode(map[string]any{"data": out})
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Bearer token from 'flowctl token'")
	_ = cmd.MarkFlagRequired("token")
	if fc.page {
		cmd.Flags().StringVar(&pageID, "page-id", "", "Page id")
	}
	if fc.question {
		cmd.Flags().StringVar(&question, "question", "", "Question or instruction")
	}

	return cmd
}
