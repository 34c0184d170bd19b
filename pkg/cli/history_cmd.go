package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"sqlsplit/internal/app"
	"sqlsplit/internal/domain"
)

type historyRecord struct {
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	Kind           string    `json:"kind"`
	Dialect        string    `json:"dialect"`
	Status         string    `json:"status"`
	StatementCount int       `json:"statement_count"`
	DurationMs     int64     `json:"duration_ms"`
	SQL            string    `json:"sql"`
	Error          string    `json:"error,omitempty"`
}

func toHistoryRecord(e domain.HistoryEntry) historyRecord {
	return historyRecord{
		ID:             e.ID,
		CreatedAt:      e.CreatedAt,
		Kind:           string(e.Kind),
		Dialect:        e.Dialect,
		Status:         string(e.Status),
		StatementCount: e.StatementCount,
		DurationMs:     e.DurationMs,
		SQL:            e.SQL,
		Error:          e.Error,
	}
}

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded decompositions and statement runs",
	}
	cmd.AddCommand(newHistoryListCmd(opts))
	cmd.AddCommand(newHistoryGetCmd(opts))
	return cmd
}

// withHistory opens the configured history store for the duration of fn.
func withHistory(ctx context.Context, opts *rootOptions, fn func(*app.App) error) error {
	cfg, err := opts.appConfig()
	if err != nil {
		return err
	}
	// Listing history never needs the target database.
	cfg.DatabaseURL = ""
	if cfg.HistoryDBPath == "" {
		return domain.ErrUnavailable("history is disabled: set HISTORY_DB_PATH")
	}
	a, err := app.New(ctx, cfg, opts.logger)
	if err != nil {
		return err
	}
	defer a.Close() //nolint:errcheck
	return fn(a)
}

func newHistoryListCmd(opts *rootOptions) *cobra.Command {
	var (
		kind, status string
		since        time.Duration
		limit        int
		pageToken    string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List history entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := domain.HistoryFilter{
				Page: domain.PageRequest{MaxResults: limit, PageToken: pageToken},
			}
			switch k := domain.HistoryKind(kind); k {
			case "":
			case domain.HistoryDecompose, domain.HistoryQuery:
				filter.Kind = &k
			default:
				return domain.ErrValidation("--kind must be %q or %q", domain.HistoryDecompose, domain.HistoryQuery)
			}
			switch s := domain.HistoryStatus(status); s {
			case "":
			case domain.StatusOK, domain.StatusError:
				filter.Status = &s
			default:
				return domain.ErrValidation("--status must be %q or %q", domain.StatusOK, domain.StatusError)
			}
			if since > 0 {
				from := time.Now().Add(-since)
				filter.From = &from
			}

			return withHistory(cmd.Context(), opts, func(a *app.App) error {
				entries, total, err := a.Services.History.List(cmd.Context(), filter)
				if err != nil {
					return err
				}
				records := make([]historyRecord, len(entries))
				for i, e := range entries {
					records[i] = toHistoryRecord(e)
				}
				next := domain.NextPageToken(filter.Page.Offset(), filter.Page.Limit(), total)

				w := cmd.OutOrStdout()
				if ok, err := printStructured(w, opts.output, map[string]any{
					"entries":         records,
					"total":           total,
					"next_page_token": next,
				}); ok {
					return err
				}

				rows := make([][]string, len(records))
				for i, r := range records {
					rows[i] = []string{
						r.ID,
						r.CreatedAt.Local().Format(time.DateTime),
						r.Kind,
						r.Status,
						strconv.Itoa(r.StatementCount),
						strconv.FormatInt(r.DurationMs, 10) + "ms",
						truncate(oneLine(r.SQL), 60),
					}
				}
				if err := printTable(w, []string{"id", "created", "kind", "status", "count", "took", "sql"}, rows); err != nil {
					return err
				}
				st := newStyler(w)
				summary := fmt.Sprintf("(%d of %d)", len(records), total)
				if next != "" {
					summary += " next page: --page-token " + next
				}
				_, err = fmt.Fprintln(w, st.dim(summary))
				return err
			})
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "Only entries of this kind: decompose or query")
	cmd.Flags().StringVar(&status, "status", "", "Only entries with this status: ok or error")
	cmd.Flags().DurationVar(&since, "since", 0, "Only entries newer than this, e.g. 24h")
	cmd.Flags().IntVar(&limit, "limit", domain.DefaultMaxResults, "Maximum entries to list")
	cmd.Flags().StringVar(&pageToken, "page-token", "", "Token from a previous page")
	return cmd
}

func newHistoryGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one history entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(cmd.Context(), opts, func(a *app.App) error {
				e, err := a.Services.History.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				r := toHistoryRecord(*e)
				w := cmd.OutOrStdout()
				if ok, err := printStructured(w, opts.output, r); ok {
					return err
				}
				st := newStyler(w)
				_, err = fmt.Fprintf(w, "%s\n%s\n", st.dim(fmt.Sprintf("-- %s %s %s %s, %d, %dms",
					r.ID, r.CreatedAt.Local().Format(time.DateTime), r.Kind, r.Status, r.StatementCount, r.DurationMs)), r.SQL)
				if err == nil && r.Error != "" {
					_, err = fmt.Fprintln(w, st.red(r.Error))
				}
				return err
			})
		},
	}
}

func oneLine(s string) string {
	out := make([]rune, 0, len(s))
	space := false
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' || r == ' ' {
			if !space && len(out) > 0 {
				out = append(out, ' ')
			}
			space = true
			continue
		}
		space = false
		out = append(out, r)
	}
	return string(out)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
