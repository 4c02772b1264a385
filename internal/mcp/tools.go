package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	ToolAnalyzeTickets  = "analyze-tickets"
	ToolFrequency       = "ticket-frequency"
	ToolResponseTimes   = "response-times"
	ToolBrandAnalysis   = "brand-analysis"
	ToolCountryAnalysis = "country-analysis"
)

// DefaultDays is the look-back window used when a call omits days.
const DefaultDays = 30

type AnalyzeTicketsInput struct {
	Email   string `json:"email" jsonschema:"Email address used to fetch tickets"`
	Days    *int   `json:"days,omitempty" jsonschema:"Number of days to analyze tickets from (0 analyzes all history)"`
	EmailTo string `json:"emailTo" jsonschema:"Email address to send the report to"`
}

type FrequencyInput struct {
	Email   string `json:"email" jsonschema:"Email address used to fetch tickets"`
	Days    *int   `json:"days,omitempty" jsonschema:"Number of days to analyze"`
	GroupBy string `json:"groupBy,omitempty" jsonschema:"How to group the tickets"`
}

type ResponseTimesInput struct {
	Email   string `json:"email" jsonschema:"Email address used to fetch tickets"`
	Days    *int   `json:"days,omitempty" jsonschema:"Number of days to analyze"`
	GroupBy string `json:"groupBy,omitempty" jsonschema:"How to group the results"`
}

type DimensionInput struct {
	Email   string `json:"email" jsonschema:"Email address used to fetch tickets"`
	Days    *int   `json:"days,omitempty" jsonschema:"Number of days to analyze"`
	EmailTo string `json:"emailTo,omitempty" jsonschema:"Optional email to send report to"`
}

// inputSchema infers the schema for T, then attaches defaults and enums the
// struct tags cannot express.
func inputSchema[T any](enums map[string][]any, defaults map[string]any) (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[T](nil)
	if err != nil {
		return nil, err
	}
	for name, values := range enums {
		prop, ok := schema.Properties[name]
		if !ok {
			return nil, fmt.Errorf("schema has no property %q", name)
		}
		prop.Enum = values
	}
	for name, value := range defaults {
		prop, ok := schema.Properties[name]
		if !ok {
			return nil, fmt.Errorf("schema has no property %q", name)
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		prop.Default = raw
	}
	return schema, nil
}

func (s *Server) registerTools(srv *sdk.Server) error {
	daysDefault := map[string]any{"days": DefaultDays}

	analyzeSchema, err := inputSchema[AnalyzeTicketsInput](nil, daysDefault)
	if err != nil {
		return err
	}
	sdk.AddTool(srv, &sdk.Tool{
		Name:        ToolAnalyzeTickets,
		Description: "Analyze Zendesk tickets, generate a summary and an XLSX report that is e-mailed to emailTo.",
		InputSchema: analyzeSchema,
	}, s.handleAnalyzeTickets)

	frequencySchema, err := inputSchema[FrequencyInput](
		map[string][]any{"groupBy": {"day", "week", "month"}},
		map[string]any{"days": DefaultDays, "groupBy": "day"},
	)
	if err != nil {
		return err
	}
	sdk.AddTool(srv, &sdk.Tool{
		Name:        ToolFrequency,
		Description: "Get frequency of ticket creation and calculate average creation rates per day, week or month.",
		InputSchema: frequencySchema,
	}, s.handleFrequency)

	responseSchema, err := inputSchema[ResponseTimesInput](
		map[string][]any{"groupBy": {"brand", "country", "none"}},
		map[string]any{"days": DefaultDays, "groupBy": "none"},
	)
	if err != nil {
		return err
	}
	sdk.AddTool(srv, &sdk.Tool{
		Name:        ToolResponseTimes,
		Description: "Calculate and analyze first response and resolution times, optionally grouped by brand or country.",
		InputSchema: responseSchema,
	}, s.handleResponseTimes)

	dimensionTools := []struct {
		name, description string
		handler           sdk.ToolHandlerFor[DimensionInput, any]
	}{
		{ToolBrandAnalysis, "Analyze tickets grouped by brand. When emailTo is set, an XLSX report is e-mailed as well.", s.handleBrandAnalysis},
		{ToolCountryAnalysis, "Analyze tickets grouped by country. When emailTo is set, an XLSX report is e-mailed as well.", s.handleCountryAnalysis},
	}
	for _, t := range dimensionTools {
		schema, err := inputSchema[DimensionInput](nil, daysDefault)
		if err != nil {
			return err
		}
		sdk.AddTool(srv, &sdk.Tool{Name: t.name, Description: t.description, InputSchema: schema}, t.handler)
	}

	return nil
}
