package sources

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hollis/daybook/internal/apperr"
	"github.com/hollis/daybook/internal/dates"
	"github.com/hollis/daybook/internal/models"
)

// TicketmasterSource reads an event-history CSV with date, location,
// and event columns. The export does not quote fields, so dates like
// "Feb 29, 2020" arrive split across two comma-separated parts and the
// lines have to be reassembled by hand instead of fed to encoding/csv.
type TicketmasterSource struct {
	cfg FileConfig
}

// NewTicketmasterSource creates an event-history source for the configured file.
func NewTicketmasterSource(cfg FileConfig) *TicketmasterSource {
	return &TicketmasterSource{cfg: cfg}
}

// Kind returns models.KindEvent.
func (s *TicketmasterSource) Kind() models.SourceKind { return models.KindEvent }

// Records parses the export line by line. Rows with no event name or an
// unparseable date are dropped and counted.
func (s *TicketmasterSource) Records(_ context.Context) ([]models.DatedRecord, int, error) {
	f, err := os.Open(s.cfg.Path)
	if err != nil {
		return nil, 0, fmt.Errorf("sources: open %s: %w: %v", s.cfg.Path, apperr.ErrSourceUnavailable, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	var out []models.DatedRecord
	var dropped int
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			first = false // header
			continue
		}
		if line == "" {
			continue
		}

		dateStr, location, event := splitEventLine(line)
		if dateStr == "" || event == "" {
			dropped++
			continue
		}
		day, err := dates.Normalize(dateStr)
		if err != nil {
			dropped++
			continue
		}
		out = append(out, models.DatedRecord{
			Date: day,
			Kind: models.KindEvent,
			Payload: models.Event{
				Name:     strings.TrimSpace(event),
				Location: strings.TrimSpace(location),
			},
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, dropped, fmt.Errorf("sources: read %s: %w: %v", s.cfg.Path, apperr.ErrSourceUnavailable, err)
	}
	return out, dropped, nil
}

// splitEventLine splits "date,location,event" where the unquoted date
// may itself contain one comma ("Feb 29, 2020,Arena,Concert"). When the
// first field alone does not parse as a date but the first two joined
// do, the join wins and the remaining fields shift right.
func splitEventLine(line string) (dateStr, location, event string) {
	parts := strings.Split(line, ",")
	if len(parts) < 3 {
		if len(parts) > 0 {
			dateStr = parts[0]
		}
		if len(parts) > 1 {
			location = parts[1]
		}
		return dateStr, location, ""
	}

	dateStr = parts[0]
	rest := parts[1:]
	if len(parts) >= 4 {
		if _, err := dates.Normalize(parts[0]); err != nil {
			joined := parts[0] + "," + parts[1]
			if _, err := dates.Normalize(joined); err == nil {
				dateStr = joined
				rest = parts[2:]
			}
		}
	}

	location = rest[0]
	event = strings.Join(rest[1:], ",")
	return dateStr, location, event
}

// Cleanup removes the consumed export when configured to do so.
func (s *TicketmasterSource) Cleanup() error {
	return removeSourceFile(s.cfg)
}
