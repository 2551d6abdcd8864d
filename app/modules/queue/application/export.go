package queueservice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	queuedomain "github.com/open-mic-club/encore/app/modules/queue/domain"
)

const exportSheetName = "History"

var exportHeader = []string{"Singer", "Song", "Artist", "Type", "Status", "Position", "Signed Up", "Performed"}

// ExportHistory renders the host history view as an xlsx workbook, one row
// per signup in creation order.
func (s *QueueService) ExportHistory(ctx context.Context, hostID string, eventID uuid.UUID) ([]byte, error) {
	signups, err := s.History(ctx, hostID, eventID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet, err := f.NewSheet(exportSheetName)
	if err != nil {
		return nil, fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(sheet)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("removing default sheet: %w", err)
	}

	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheetName, cell, title); err != nil {
			return nil, fmt.Errorf("writing header: %w", err)
		}
	}

	for row, signup := range signups {
		if err := writeExportRow(f, row+2, signup); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", row+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeExportRow(f *excelize.File, row int, signup queuedomain.Signup) error {
	performed := ""
	if signup.PerformingAt != nil {
		performed = signup.PerformingAt.Format(time.RFC3339)
	}
	position := ""
	if signup.Status == queuedomain.StatusQueued {
		position = fmt.Sprintf("%d", signup.Position)
	}

	values := []any{
		signup.SingerName,
		signup.SongTitle,
		signup.Artist,
		string(signup.PerformanceType),
		string(signup.Status),
		position,
		signup.CreatedAt.Format(time.RFC3339),
		performed,
	}
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(exportSheetName, cell, value); err != nil {
			return err
		}
	}
	return nil
}
