package bamboohr

import (
	"context"
	"encoding/json"
	"strings"
)

// defaultEmployeeFields is used when GetEmployee is called without fields.
var defaultEmployeeFields = []string{"firstName", "lastName"}

// EmployeeDirectory is the decoded employee directory response.
type EmployeeDirectory struct {
	Fields    []ReportField `json:"fields"`
	Employees []Record      `json:"employees"`
}

// GetEmployeeDirectory fetches the company-wide employee directory.
func (c *Client) GetEmployeeDirectory(ctx context.Context) (*EmployeeDirectory, error) {
	url := c.employeeDirectoryURL()
	body, err := c.get(ctx, url, nil)
	if err != nil {
		return nil, err
	}

	var directory EmployeeDirectory
	if err := json.Unmarshal(body, &directory); err != nil {
		return nil, &DecodeError{URL: url, Err: err}
	}
	return &directory, nil
}

// GetEmployee fetches a single employee by ID. The special ID zero means the
// employee associated with the API token. When fields is empty the request
// defaults to firstName and lastName.
func (c *Client) GetEmployee(ctx context.Context, employeeID int, fields []string) (Record, error) {
	if len(fields) == 0 {
		fields = defaultEmployeeFields
	}

	url := c.employeeURL(employeeID)
	body, err := c.get(ctx, url, map[string]string{"fields": strings.Join(fields, ",")})
	if err != nil {
		return nil, err
	}

	var record Record
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, &DecodeError{URL: url, Err: err}
	}
	return record, nil
}
