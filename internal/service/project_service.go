package service

import (
	"context"
	"fmt"
	"time"

	"github.com/estdesignco/walkthrough-app/internal/model/entity"
	"github.com/estdesignco/walkthrough-app/internal/repository"
	"github.com/google/uuid"
)

// ProjectService owns project intake and maintenance.
type ProjectService struct {
	projectRepo *repository.ProjectRepository
	roomRepo    *repository.RoomRepository
}

// NewProjectService creates a project service.
func NewProjectService(projectRepo *repository.ProjectRepository, roomRepo *repository.RoomRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo, roomRepo: roomRepo}
}

// CreateProjectRequest is the questionnaire submission. SelectedRooms fans
// out into one room per entry.
type CreateProjectRequest struct {
	Name          string   `json:"name" binding:"required"`
	ClientName    string   `json:"client_name"`
	ClientEmail   string   `json:"client_email"`
	ClientPhone   string   `json:"client_phone"`
	ClientAddress string   `json:"client_address"`
	ProjectType   string   `json:"project_type"`
	BudgetRange   string   `json:"budget_range"`
	Timeline      string   `json:"timeline"`
	StylePrefs    []string `json:"style_prefs"`
	Notes         string   `json:"notes"`
	SelectedRooms []string `json:"selected_rooms"`
}

// UpdateProjectRequest patches project fields; empty strings leave a field
// untouched.
type UpdateProjectRequest struct {
	Name          string   `json:"name"`
	ClientName    string   `json:"client_name"`
	ClientEmail   string   `json:"client_email"`
	ClientPhone   string   `json:"client_phone"`
	ClientAddress string   `json:"client_address"`
	ProjectType   string   `json:"project_type"`
	BudgetRange   string   `json:"budget_range"`
	Timeline      string   `json:"timeline"`
	StylePrefs    []string `json:"style_prefs"`
	Notes         string   `json:"notes"`
}

// ProjectListResult is one page of projects.
type ProjectListResult struct {
	Items      []entity.Project `json:"items"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// List returns projects matching the filters.
func (s *ProjectService) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) (*ProjectListResult, error) {
	projects, total, err := s.projectRepo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &ProjectListResult{
		Items:      projects,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Get returns one project.
func (s *ProjectService) Get(ctx context.Context, id string) (*entity.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	return project, nil
}

// Create creates a project from the questionnaire and fans the selected room
// types out into rooms.
func (s *ProjectService) Create(ctx context.Context, userID string, req *CreateProjectRequest) (*entity.Project, error) {
	now := time.Now()
	project := &entity.Project{
		ID:            newID(),
		Name:          req.Name,
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		ClientPhone:   req.ClientPhone,
		ClientAddress: req.ClientAddress,
		ProjectType:   req.ProjectType,
		BudgetRange:   req.BudgetRange,
		Timeline:      req.Timeline,
		StylePrefs:    req.StylePrefs,
		Notes:         req.Notes,
		CreatedBy:     userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	if len(req.SelectedRooms) > 0 {
		rooms := make([]entity.Room, 0, len(req.SelectedRooms))
		for _, name := range req.SelectedRooms {
			if name == "" {
				continue
			}
			rooms = append(rooms, entity.Room{
				ID:        newID(),
				ProjectID: project.ID,
				Name:      name,
				CreatedBy: userID,
				CreatedAt: now,
				UpdatedAt: now,
			})
		}
		if err := s.roomRepo.CreateBatch(ctx, rooms); err != nil {
			return nil, fmt.Errorf("create questionnaire rooms: %w", err)
		}
		project.Rooms = rooms
	}

	return project, nil
}

// Update patches a project.
func (s *ProjectService) Update(ctx context.Context, id string, req *UpdateProjectRequest) (*entity.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}

	if req.Name != "" {
		project.Name = req.Name
	}
	if req.ClientName != "" {
		project.ClientName = req.ClientName
	}
	if req.ClientEmail != "" {
		project.ClientEmail = req.ClientEmail
	}
	if req.ClientPhone != "" {
		project.ClientPhone = req.ClientPhone
	}
	if req.ClientAddress != "" {
		project.ClientAddress = req.ClientAddress
	}
	if req.ProjectType != "" {
		project.ProjectType = req.ProjectType
	}
	if req.BudgetRange != "" {
		project.BudgetRange = req.BudgetRange
	}
	if req.Timeline != "" {
		project.Timeline = req.Timeline
	}
	if req.StylePrefs != nil {
		project.StylePrefs = req.StylePrefs
	}
	if req.Notes != "" {
		project.Notes = req.Notes
	}
	project.UpdatedAt = time.Now()

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return project, nil
}

// Delete soft-deletes a project.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if _, err := s.projectRepo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("find project: %w", err)
	}
	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

func newID() string {
	return uuid.New().String()[:32]
}
