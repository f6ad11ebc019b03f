package bamboohr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Report output formats accepted by the custom report endpoint.
const (
	FormatJSON = "json"
	FormatXML  = "xml"
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
	FormatXLS  = "xls"
)

// Record maps a requested field name to its value. A pointer distinguishes an
// empty string from a JSON null for fields the employee has no value for.
type Record map[string]*string

// ReportField describes a field as echoed back by the API.
type ReportField struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Name string `json:"name"`
}

// CustomReport is the decoded JSON custom report response.
type CustomReport struct {
	Title     string        `json:"title"`
	Fields    []ReportField `json:"fields"`
	Employees []Record      `json:"employees"`
}

// customReportRequest is the JSON body posted to the custom report endpoint.
type customReportRequest struct {
	Title  string   `json:"title"`
	Fields []string `json:"fields"`
}

// GetCustomReport requests a JSON custom report limited to current employees
// and returns the employee records in response order. Each record carries
// exactly the fields the service returned for the requested field list; the
// client does not validate field names against the remote schema.
func (c *Client) GetCustomReport(ctx context.Context, title string, fields []string) ([]Record, error) {
	report, err := c.GetCustomReportFull(ctx, title, fields, true)
	if err != nil {
		return nil, err
	}
	return report.Employees, nil
}

// GetCustomReportFull requests a JSON custom report and returns the full
// decoded response including the field metadata. Unlike the BambooHR UI, the
// endpoint includes inactive employees unless onlyCurrent is set.
func (c *Client) GetCustomReportFull(ctx context.Context, title string, fields []string, onlyCurrent bool) (*CustomReport, error) {
	body, err := c.postCustomReport(ctx, title, fields, FormatJSON, onlyCurrent)
	if err != nil {
		return nil, err
	}

	var report CustomReport
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, &DecodeError{URL: c.customReportURL(), Err: err}
	}
	return &report, nil
}

// GetCustomReportRaw requests a custom report in any supported format and
// returns the undecoded response body. Useful for csv/pdf/xls exports.
func (c *Client) GetCustomReportRaw(ctx context.Context, title string, fields []string, format string, onlyCurrent bool) ([]byte, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case FormatJSON, FormatXML, FormatCSV, FormatPDF, FormatXLS:
	case "":
		format = FormatJSON
	default:
		return nil, fmt.Errorf("bamboohr: unsupported report format %q", format)
	}
	return c.postCustomReport(ctx, title, fields, format, onlyCurrent)
}

func (c *Client) postCustomReport(ctx context.Context, title string, fields []string, format string, onlyCurrent bool) ([]byte, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("bamboohr: report title is required")
	}
	if len(fields) == 0 {
		return nil, errors.New("bamboohr: report fields are required")
	}

	query := map[string]string{
		"format":      format,
		"onlyCurrent": strconv.FormatBool(onlyCurrent),
	}
	return c.post(ctx, c.customReportURL(), customReportRequest{Title: title, Fields: fields}, query)
}
