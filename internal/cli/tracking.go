package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/sakewinkel/console/internal/app"
	"github.com/sakewinkel/console/internal/config"
	"github.com/sakewinkel/console/internal/dto"
	service "github.com/sakewinkel/console/internal/service/tracking"
	"github.com/sakewinkel/console/internal/tracking"
	"github.com/sakewinkel/console/pkg/errorbank"
)

func newTrackingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tracking",
		Short: "Query order tracking data",
	}
	cmd.AddCommand(newReportCmd(), newStatsCmd(), newStatusesCmd())
	return cmd
}

func withTracking(ctx context.Context, fn func(context.Context, *service.Service, config.Config) error) error {
	var (
		svc *service.Service
		cfg config.Config
	)
	opts := fx.Options(app.Core, fx.Populate(&svc, &cfg))
	return runWithApp(ctx, opts, func(ctx context.Context) error {
		return fn(ctx, svc, cfg)
	})
}

func newReportCmd() *cobra.Command {
	var (
		filter   tracking.Filter
		page     int
		pageSize int
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a page of tracked orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracking(cmd.Context(), func(ctx context.Context, svc *service.Service, cfg config.Config) error {
				if pageSize <= 0 {
					pageSize = svc.PageSize()
				}
				board := tracking.NewBoard(min(pageSize, service.MaxPageSize))
				ticket := board.Request(filter)

				records, err := svc.Records(ctx, filter)
				if err != nil {
					board.Fail(ticket)
					printNotice(cmd.ErrOrStderr(), errorbank.NoticeFrom(service.TitleTrackingFailed, err))
				} else {
					board.Deliver(ticket, records)
				}

				view := board.GoTo(page)
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), dto.FromPage(view, board.Filter()))
				}
				return renderReport(cmd.OutOrStdout(), view, cfg.Tracking.Location)
			})
		},
	}
	cmd.Flags().StringVar(&filter.Search, "search", "", "Match client name, email or product name")
	cmd.Flags().StringVar(&filter.Status, "status", "", "Exact order status name")
	cmd.Flags().StringVar(&filter.StartDate, "start", "", "Earliest creation date (YYYY-MM-DD or RFC3339)")
	cmd.Flags().StringVar(&filter.EndDate, "end", "", "Latest creation date (YYYY-MM-DD or RFC3339)")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Records per page (defaults to TRACKING_PAGE_SIZE)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func newStatsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print order statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracking(cmd.Context(), func(ctx context.Context, svc *service.Service, _ config.Config) error {
				res := svc.Stats(ctx)
				printNotice(cmd.ErrOrStderr(), res.Notice)
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), res.Stats)
				}
				return renderStats(cmd.OutOrStdout(), res.Stats)
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func newStatusesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "statuses",
		Short: "List order status names",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracking(cmd.Context(), func(ctx context.Context, svc *service.Service, _ config.Config) error {
				res := svc.StatusNames(ctx)
				printNotice(cmd.ErrOrStderr(), res.Notice)
				for _, name := range res.Names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			})
		},
	}
}

func renderReport(w io.Writer, page tracking.Page[tracking.Record], loc *time.Location) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ORDER\tCREATED\tCLIENT\tPRODUCT\tAMOUNT\tSTATUS\tPAID\tTO PAYMENT\tTO DELIVERY\tTOTAL")
	for _, r := range page.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.OrderID,
			dto.FormatTime(&r.OrderCreatedAt, loc),
			r.ClientName,
			r.ProductName,
			dto.FormatAmount(r.OrderAmount),
			r.OrderStatus,
			yesNo(r.IsPaid),
			dto.FormatHours(r.HoursToPayment),
			dto.FormatHours(r.HoursToDelivery),
			dto.FormatHours(r.TotalOrderHours),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	meta := dto.FromPage(page, tracking.Filter{}).Page
	summary := dto.Showing(meta)
	if meta.TotalPages > 1 {
		pages := make([]string, 0, len(meta.VisiblePages))
		for _, n := range meta.VisiblePages {
			if n == meta.Page {
				pages = append(pages, fmt.Sprintf("[%d]", n))
				continue
			}
			pages = append(pages, fmt.Sprint(n))
		}
		summary += fmt.Sprintf("  page %s of %d", strings.Join(pages, " "), meta.TotalPages)
	}
	_, err := fmt.Fprintln(w, summary)
	return err
}

func renderStats(w io.Writer, s tracking.Stats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Total orders\t%d\n", s.TotalOrders)
	fmt.Fprintf(tw, "Pending payment\t%d\n", s.PendingPayment)
	fmt.Fprintf(tw, "Delivery pending\t%d\n", s.DeliveryPending)
	fmt.Fprintf(tw, "Completed\t%d\n", s.CompletedOrders)
	return tw.Flush()
}

func printNotice(w io.Writer, n *errorbank.Notice) {
	if n == nil {
		return
	}
	fmt.Fprintf(w, "%s: %s\n", n.Title, n.Message)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
