package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/varaher/prana/internal/services/chat"
	chatmodels "github.com/varaher/prana/internal/services/chat/models"
	"github.com/varaher/prana/internal/services/records"
)

const reportSystemPrompt = "You are a health assistant writing a short plain-language summary " +
	"of the user's current health data for their own review. Do not diagnose. " +
	"Point out anything the user should discuss with a doctor."

// Service generates health summaries through the same provider capability
// the chat relay uses, as a single non-streaming completion.
type Service struct {
	provider chat.Provider
	records  *records.Service
}

func NewService(provider chat.Provider, recordsService *records.Service) (*Service, error) {
	if provider == nil {
		return nil, fmt.Errorf("completion provider is required")
	}
	return &Service{
		provider: provider,
		records:  recordsService,
	}, nil
}

// Generate builds a summary of the user's stored medications, records and
// readings and asks the provider for a readable report.
func (s *Service) Generate(ctx context.Context, userID uuid.UUID, userContext *chatmodels.UserContext) (string, error) {
	if s.records == nil {
		return "", fmt.Errorf("records store unavailable")
	}

	medications, err := s.records.ListMedications(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load medications: %w", err)
	}
	recs, err := s.records.ListRecords(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load records: %w", err)
	}
	readings, err := s.records.ListReadings(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load readings: %w", err)
	}

	// The composer discards the first turn, so a placeholder greeting leads.
	messages := []chatmodels.Message{
		{Role: "user", Content: "greeting"},
		{Role: "user", Content: summaryRequest(medications, recs, readings)},
	}
	outbound, err := chat.Compose(messages, reportSystemPrompt, userContext)
	if err != nil {
		return "", err
	}

	report, err := s.provider.Completion(ctx, outbound)
	if err != nil {
		log.Error().Err(err).Msg("Failed to generate health report")
		return "", fmt.Errorf("%w: %v", chat.ErrUpstreamUnavailable, err)
	}
	return report, nil
}

func summaryRequest(medications []records.Medication, recs []records.HealthRecord, readings []records.VitalsReading) string {
	var b strings.Builder
	b.WriteString("Please summarise my current health data.\n")

	b.WriteString("\nMedications:\n")
	if len(medications) == 0 {
		b.WriteString("- none recorded\n")
	}
	for _, m := range medications {
		fmt.Fprintf(&b, "- %s %s (%s)\n", m.Name, m.Dosage, m.Schedule)
	}

	b.WriteString("\nHealth records:\n")
	if len(recs) == 0 {
		b.WriteString("- none recorded\n")
	}
	for _, r := range recs {
		fmt.Fprintf(&b, "- [%s] %s: %s\n", r.Kind, r.Title, r.Detail)
	}

	b.WriteString("\nRecent readings:\n")
	if len(readings) == 0 {
		b.WriteString("- none recorded\n")
	}
	for _, r := range readings {
		fmt.Fprintf(&b, "- %s: %g %s at %s\n", r.Kind, r.Value, r.Unit, r.RecordedAt.Format("2006-01-02 15:04"))
	}

	return b.String()
}
