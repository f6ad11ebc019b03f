package export

import (
	"context"
	"crypto/sha1" //nolint:gosec // non-cryptographic record fingerprinting
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hrsync-hq/bamboo-sync/internal/domain"
	"github.com/hrsync-hq/bamboo-sync/internal/logger"
	"github.com/hrsync-hq/bamboo-sync/internal/storage"
	"github.com/hrsync-hq/bamboo-sync/pkg/bamboohr"
	"github.com/hrsync-hq/bamboo-sync/pkg/publishers"
	"github.com/hrsync-hq/bamboo-sync/pkg/reports"
)

// Service runs report presets against BambooHR and publishes new records downstream.
type Service struct {
	client    ReportClient
	store     storage.Store
	publisher EventPublisher
	log       logger.Logger
}

// NewService wires an export service from its collaborators.
func NewService(client ReportClient, store storage.Store, publisher EventPublisher, log logger.Logger) *Service {
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &Service{
		client:    client,
		store:     store,
		publisher: publisher,
		log:       log,
	}
}

// Run executes an export pass for all given presets. A failing preset does not
// stop the others; errors are aggregated.
func (s *Service) Run(ctx context.Context, presets []reports.Preset) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("export service is not initialized")
	}
	if len(presets) == 0 {
		return fmt.Errorf("no report presets configured for export")
	}

	var errs []error
	for _, preset := range presets {
		if err := s.runPreset(ctx, preset); err != nil {
			errs = append(errs, err)
			s.log.ErrorObj("report export failed", "report_error", map[string]any{
				"report_id": preset.ID,
				"error":     err.Error(),
			})
		}
	}
	return errors.Join(errs...)
}

func (s *Service) runPreset(ctx context.Context, preset reports.Preset) error {
	report, err := s.client.GetCustomReportFull(ctx, preset.Title, preset.Fields, preset.OnlyCurrentValue())
	if err != nil {
		return fmt.Errorf("fetch report %s: %w", preset.ID, err)
	}

	var (
		published, skipped int
		errs               []error
	)
	for _, record := range report.Employees {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fp, err := fingerprint(preset.ID, record)
		if err != nil {
			errs = append(errs, fmt.Errorf("fingerprint record: %w", err))
			continue
		}

		seen, err := s.seenRecord(fp)
		if err != nil {
			errs = append(errs, fmt.Errorf("check record %s: %w", fp, err))
			continue
		}
		if seen {
			skipped++
			continue
		}

		evt := publishers.NewEvent(preset.ID, preset.Title, toEmployeeRecord(record, fp))
		if _, err := s.publisher.Publish(ctx, evt); err != nil {
			errs = append(errs, fmt.Errorf("publish record %s: %w", fp, err))
			continue
		}
		published++

		if err := s.markRecord(fp); err != nil {
			errs = append(errs, fmt.Errorf("mark record %s: %w", fp, err))
		}
	}

	s.log.InfoObj("report export completed", "report_result", map[string]any{
		"report_id":         preset.ID,
		"records_total":     len(report.Employees),
		"records_published": published,
		"records_skipped":   skipped,
	})
	return errors.Join(errs...)
}

func (s *Service) seenRecord(fp string) (bool, error) {
	if s.store == nil {
		return false, nil
	}
	return s.store.SeenRecord(fp)
}

func (s *Service) markRecord(fp string) error {
	if s.store == nil {
		return nil
	}
	return s.store.MarkRecord(fp)
}

// fingerprint hashes the report id plus the canonical record JSON; map keys
// marshal in sorted order so equal records hash equally.
func fingerprint(reportID string, record bamboohr.Record) (string, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return "", err
	}
	sum := sha1.Sum(append([]byte(reportID+"\x00"), payload...))
	return hex.EncodeToString(sum[:]), nil
}

// toEmployeeRecord converts an API record into the domain model, preferring the
// BambooHR employee id when the report includes one.
func toEmployeeRecord(record bamboohr.Record, fp string) domain.EmployeeRecord {
	id := fp
	if v, ok := record["id"]; ok && v != nil && *v != "" {
		id = *v
	}
	return domain.EmployeeRecord{ID: id, Fields: record}
}
