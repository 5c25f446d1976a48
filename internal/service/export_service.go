package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/estdesignco/walkthrough-app/internal/repository"
	"github.com/estdesignco/walkthrough-app/internal/sheet"
	"github.com/xuri/excelize/v2"
)

// ExportService renders a project's FF&E sheet as a downloadable file. Rows
// follow grouped render order: canonical rooms, then category priority, then
// sub-category.
type ExportService struct {
	projectRepo *repository.ProjectRepository
	roomRepo    *repository.RoomRepository
	itemRepo    *repository.ItemRepository
}

// NewExportService creates an export service.
func NewExportService(
	projectRepo *repository.ProjectRepository,
	roomRepo *repository.RoomRepository,
	itemRepo *repository.ItemRepository,
) *ExportService {
	return &ExportService{
		projectRepo: projectRepo,
		roomRepo:    roomRepo,
		itemRepo:    itemRepo,
	}
}

func (s *ExportService) grouped(ctx context.Context, projectID string) (string, sheet.Grouped, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return "", sheet.Grouped{}, fmt.Errorf("find project: %w", err)
	}
	rooms, err := s.roomRepo.ListByProject(ctx, projectID)
	if err != nil {
		return "", sheet.Grouped{}, fmt.Errorf("list rooms: %w", err)
	}
	items, err := s.itemRepo.ListByProject(ctx, projectID, sheet.KindFFE.Statuses())
	if err != nil {
		return "", sheet.Grouped{}, fmt.Errorf("list items: %w", err)
	}
	return project.Name, sheet.Group(rooms, items, sheet.Filter{}), nil
}

// BuildCSV returns the FF&E CSV export and its download filename.
func (s *ExportService) BuildCSV(ctx context.Context, projectID string) (string, []byte, error) {
	name, tree, err := s.grouped(ctx, projectID)
	if err != nil {
		return "", nil, err
	}

	var buf bytes.Buffer
	if err := sheet.WriteCSV(&buf, tree); err != nil {
		return "", nil, fmt.Errorf("write csv: %w", err)
	}
	return sheet.ExportFileName(name), buf.Bytes(), nil
}

// BuildXLSX returns the FF&E sheet as an Excel workbook.
func (s *ExportService) BuildXLSX(ctx context.Context, projectID string) (string, *excelize.File, error) {
	name, tree, err := s.grouped(ctx, projectID)
	if err != nil {
		return "", nil, err
	}

	f := excelize.NewFile()
	const sheetName = "FF&E"
	f.SetSheetName("Sheet1", sheetName)

	for col, header := range sheet.ExportColumns {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	row := 2
	for _, room := range tree.Rooms {
		for _, cat := range room.Categories {
			for _, sub := range cat.SubCategories {
				for _, item := range sub.Items {
					values := []interface{}{
						room.Room.Name,
						cat.Name,
						sub.Name,
						item.Name,
						item.VendorSKU,
						item.Quantity,
						item.Size,
						item.Status,
						item.FinishColor,
						item.ActualCost,
						item.ImageURL,
						item.ProductURL,
						dateCell(item.EstShipDate),
						dateCell(item.EstDeliveryDate),
						dateCell(item.InstallDate),
						item.ShipTo,
						item.TrackingNumber,
						item.Carrier,
						dateCell(item.OrderDate),
						item.Remarks,
					}
					for col, v := range values {
						cell, _ := excelize.CoordinatesToCellName(col+1, row)
						f.SetCellValue(sheetName, cell, v)
					}
					row++
				}
			}
		}
	}

	fileName := sheet.KebabCase(name) + "-ffe-data.xlsx"
	return fileName, f, nil
}

func dateCell(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
