package domain

// Domain contains core models shared by the export pipeline.

// EmployeeRecord is one employee row pulled from a BambooHR report. ID is the
// BambooHR employee id when the report includes one, otherwise a fingerprint
// of the record contents.
type EmployeeRecord struct {
	ID     string             `json:"id"`
	Fields map[string]*string `json:"fields"`
}
