package export

import (
	"context"

	"github.com/hrsync-hq/bamboo-sync/pkg/bamboohr"
	"github.com/hrsync-hq/bamboo-sync/pkg/publishers"
)

// ReportClient fetches custom reports from BambooHR. Satisfied by *bamboohr.Client.
type ReportClient interface {
	GetCustomReportFull(ctx context.Context, title string, fields []string, onlyCurrent bool) (*bamboohr.CustomReport, error)
}

// EventPublisher publishes exported records downstream. Satisfied by *publishers.Fanout.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}
