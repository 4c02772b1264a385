package mcp

import (
	"context"
	"fmt"
	"path/filepath"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"zendesk-analytics/internal/analytics"
	"zendesk-analytics/internal/report"
	"zendesk-analytics/internal/visuals"
)

// Workbook writers, replaced in tests to simulate a failed write.
var (
	writeTicketWorkbook    = report.WriteTicketWorkbook
	writeDimensionWorkbook = report.WriteDimensionWorkbook
)

func (s *Server) handleAnalyzeTickets(ctx context.Context, _ *sdk.CallToolRequest, in AnalyzeTicketsInput) (*sdk.CallToolResult, any, error) {
	return run(ToolAnalyzeTickets, "analyzing tickets", func() (string, error) {
		days := resolveDays(in.Days)
		if err := validateRequest(in.Email, days, in.EmailTo, true); err != nil {
			return "", err
		}

		tr, err := s.GenerateTicketReport(ctx, in.Email, days)
		if err != nil {
			return "", err
		}

		err = s.deliverer.Deliver(ctx, report.Delivery{
			To:       in.EmailTo,
			Subject:  report.Subject(report.KindTickets, s.now()),
			Body:     "Please find attached the Zendesk ticket analysis report.\n\n" + tr.Summary,
			FilePath: tr.Path,
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s\n\nReport has been sent to %s with file %s", tr.Summary, in.EmailTo, filepath.Base(tr.Path)), nil
	})
}

// TicketReport is a written ticket workbook and its text summary.
type TicketReport struct {
	Path     string
	Summary  string
	Analysis analytics.Analysis
}

// GenerateTicketReport fetches, analyzes and writes the ticket workbook. The
// workbook and the text summary are rendered concurrently.
func (s *Server) GenerateTicketReport(ctx context.Context, email string, days int) (*TicketReport, error) {
	filtered, err := s.window(ctx, email, days)
	if err != nil {
		return nil, err
	}
	analysis := analytics.Analyze(filtered, s.cfg.Calendar)

	path, err := s.reports.Reserve(report.KindTickets)
	if err != nil {
		return nil, err
	}

	tr := &TicketReport{Path: path, Analysis: analysis}
	var g errgroup.Group
	g.Go(func() error {
		return writeTicketWorkbook(path, analysis, filtered, s.meta(days))
	})
	g.Go(func() error {
		tr.Summary = report.RenderSummary(analysis)
		return nil
	})
	if err := g.Wait(); err != nil {
		s.reports.Discard(path)
		return nil, fmt.Errorf("write ticket workbook: %w", err)
	}
	return tr, nil
}

func (s *Server) meta(days int) report.Meta {
	return report.Meta{GeneratedAt: s.now(), Days: days, Calendar: s.cfg.Calendar}
}

func (s *Server) handleFrequency(ctx context.Context, _ *sdk.CallToolRequest, in FrequencyInput) (*sdk.CallToolResult, any, error) {
	return run(ToolFrequency, "analyzing ticket frequency", func() (string, error) {
		days := resolveDays(in.Days)
		if err := validateRequest(in.Email, days, "", false); err != nil {
			return "", err
		}
		bucket, err := analytics.ParseBucket(in.GroupBy)
		if err != nil {
			return "", err
		}

		filtered, err := s.window(ctx, in.Email, days)
		if err != nil {
			return "", err
		}
		res := analytics.Frequency(filtered, bucket, s.cfg.Calendar)
		return report.RenderFrequency(res, days, s.cfg.EnableMermaidCharts), nil
	})
}

func (s *Server) handleResponseTimes(ctx context.Context, _ *sdk.CallToolRequest, in ResponseTimesInput) (*sdk.CallToolResult, any, error) {
	return run(ToolResponseTimes, "calculating response times", func() (string, error) {
		days := resolveDays(in.Days)
		if err := validateRequest(in.Email, days, "", false); err != nil {
			return "", err
		}
		dim, err := analytics.ParseDimension(in.GroupBy)
		if err != nil {
			return "", err
		}

		filtered, err := s.window(ctx, in.Email, days)
		if err != nil {
			return "", err
		}
		return report.RenderResponseTimes(analytics.ResponseTimes(filtered, dim), days), nil
	})
}

func (s *Server) handleBrandAnalysis(ctx context.Context, _ *sdk.CallToolRequest, in DimensionInput) (*sdk.CallToolResult, any, error) {
	return run(ToolBrandAnalysis, "analyzing tickets by brand", func() (string, error) {
		return s.dimensionAnalysis(ctx, analytics.DimensionBrand, in)
	})
}

func (s *Server) handleCountryAnalysis(ctx context.Context, _ *sdk.CallToolRequest, in DimensionInput) (*sdk.CallToolResult, any, error) {
	return run(ToolCountryAnalysis, "analyzing tickets by country", func() (string, error) {
		return s.dimensionAnalysis(ctx, analytics.DimensionCountry, in)
	})
}

func (s *Server) dimensionAnalysis(ctx context.Context, dim analytics.Dimension, in DimensionInput) (string, error) {
	days := resolveDays(in.Days)
	if err := validateRequest(in.Email, days, in.EmailTo, false); err != nil {
		return "", err
	}

	filtered, err := s.window(ctx, in.Email, days)
	if err != nil {
		return "", err
	}
	groups := analytics.Breakdown(filtered, dim, s.cfg.Calendar)

	if in.EmailTo != "" {
		if err := s.sendDimensionReport(ctx, dim, groups, days, in.EmailTo); err != nil {
			return "", err
		}
	}

	var text string
	if dim == analytics.DimensionCountry {
		text = report.RenderCountryAnalysis(groups, len(filtered), days, in.EmailTo)
	} else {
		text = report.RenderBrandAnalysis(groups, len(filtered), days, in.EmailTo)
	}
	if s.cfg.EnableMermaidCharts {
		if chart := visuals.CountChart(fmt.Sprintf("Tickets by %s", dim), groupCounts(groups)); chart != "" {
			text += "\n\n" + chart
		}
	}
	return text, nil
}

func groupCounts(groups []analytics.GroupStats) []analytics.Count {
	counts := make([]analytics.Count, 0, len(groups))
	for _, g := range groups {
		counts = append(counts, analytics.Count{Name: g.Name, Count: g.Count})
	}
	return counts
}

func (s *Server) sendDimensionReport(ctx context.Context, dim analytics.Dimension, groups []analytics.GroupStats, days int, to string) error {
	kind := report.KindBrand
	if dim == analytics.DimensionCountry {
		kind = report.KindCountry
	}

	path, err := s.reports.Reserve(kind)
	if err != nil {
		return err
	}
	if err := writeDimensionWorkbook(path, dim, groups, s.meta(days)); err != nil {
		s.reports.Discard(path)
		return fmt.Errorf("write %s workbook: %w", dim, err)
	}

	return s.deliverer.Deliver(ctx, report.Delivery{
		To:       to,
		Subject:  report.Subject(kind, s.now()),
		Body:     report.DimensionBody(kind, days),
		FilePath: path,
	})
}
