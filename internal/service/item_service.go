package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/estdesignco/walkthrough-app/internal/model/entity"
	"github.com/estdesignco/walkthrough-app/internal/repository"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
)

const itemCacheTTL = 5 * time.Minute

// ItemService owns items: CRUD, bulk create and image upload. The full item
// list of a project is cached in redis and invalidated on every mutation.
type ItemService struct {
	itemRepo    *repository.ItemRepository
	roomRepo    *repository.RoomRepository
	rdb         *redis.Client
	minioClient *minio.Client
	bucketName  string
}

// NewItemService creates an item service.
func NewItemService(
	itemRepo *repository.ItemRepository,
	roomRepo *repository.RoomRepository,
	rdb *redis.Client,
	minioClient *minio.Client,
	bucketName string,
) *ItemService {
	return &ItemService{
		itemRepo:    itemRepo,
		roomRepo:    roomRepo,
		rdb:         rdb,
		minioClient: minioClient,
		bucketName:  bucketName,
	}
}

// CreateItemRequest creates one item. Status defaults to Walkthrough and
// quantity to 1.
type CreateItemRequest struct {
	ProjectID   string `json:"project_id" binding:"required"`
	RoomID      string `json:"room_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category"`
	SubCategory string `json:"sub_category"`
	Status      string `json:"status"`
	Quantity    int    `json:"quantity"`

	VendorSKU       string     `json:"vendor_sku"`
	ActualCost      float64    `json:"actual_cost"`
	Size            string     `json:"size"`
	FinishColor     string     `json:"finish_color"`
	ImageURL        string     `json:"image_url"`
	ProductURL      string     `json:"product_url"`
	EstShipDate     *time.Time `json:"est_ship_date"`
	EstDeliveryDate *time.Time `json:"est_delivery_date"`
	InstallDate     *time.Time `json:"install_date"`
	ShipTo          string     `json:"ship_to"`
	TrackingNumber  string     `json:"tracking_number"`
	Carrier         string     `json:"carrier"`
	OrderDate       *time.Time `json:"order_date"`
	Remarks         string     `json:"remarks"`
}

// BulkCreateRequest creates many items in one request.
type BulkCreateRequest struct {
	Items []CreateItemRequest `json:"items" binding:"required"`
}

// ListByProject returns a project's items filtered to a status set. The
// unfiltered list is served from redis when warm.
func (s *ItemService) ListByProject(ctx context.Context, projectID string, statuses []string) ([]entity.Item, error) {
	if items, ok := s.cachedItems(ctx, projectID); ok {
		return filterStatuses(items, statuses), nil
	}

	items, err := s.itemRepo.ListByProject(ctx, projectID, nil)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	s.cacheItems(ctx, projectID, items)
	return filterStatuses(items, statuses), nil
}

// Get returns one item.
func (s *ItemService) Get(ctx context.Context, id string) (*entity.Item, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find item: %w", err)
	}
	return item, nil
}

// Create validates the room reference and inserts one item.
func (s *ItemService) Create(ctx context.Context, userID string, req *CreateItemRequest) (*entity.Item, error) {
	item, err := s.buildItem(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	invalidateItemCache(ctx, s.rdb, item.ProjectID)
	return item, nil
}

// CreateBulk validates and inserts a batch of items in one statement. Backs
// the bulk-create endpoint used by undo's recreate.
func (s *ItemService) CreateBulk(ctx context.Context, userID string, req *BulkCreateRequest) ([]entity.Item, error) {
	items := make([]entity.Item, 0, len(req.Items))
	projects := make(map[string]struct{})
	for i := range req.Items {
		item, err := s.buildItem(ctx, userID, &req.Items[i])
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, *item)
		projects[item.ProjectID] = struct{}{}
	}
	if err := s.itemRepo.CreateBatch(ctx, items); err != nil {
		return nil, fmt.Errorf("bulk create: %w", err)
	}
	for projectID := range projects {
		invalidateItemCache(ctx, s.rdb, projectID)
	}
	return items, nil
}

// Update applies a partial field update and returns the fresh record. A
// room_id change is validated against the item's project.
func (s *ItemService) Update(ctx context.Context, id string, fields map[string]interface{}) (*entity.Item, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find item: %w", err)
	}

	if status, ok := fields["status"].(string); ok && !entity.ValidStatus(status) {
		return nil, fmt.Errorf("unknown status %q", status)
	}
	if roomID, ok := fields["room_id"].(string); ok {
		if err := s.checkRoom(ctx, roomID, item.ProjectID); err != nil {
			return nil, err
		}
	}
	// project_id and server bookkeeping are not client-writable
	delete(fields, "id")
	delete(fields, "project_id")
	delete(fields, "created_by")
	delete(fields, "created_at")
	delete(fields, "updated_at")
	fields["updated_at"] = time.Now()

	if err := s.itemRepo.UpdateFields(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	invalidateItemCache(ctx, s.rdb, item.ProjectID)
	return s.itemRepo.FindByID(ctx, id)
}

// Delete removes one item.
func (s *ItemService) Delete(ctx context.Context, id string) error {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find item: %w", err)
	}
	if err := s.itemRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	invalidateItemCache(ctx, s.rdb, item.ProjectID)
	return nil
}

// UploadImage stores a clipped product image in MinIO and points the item's
// image_url at the stored object.
func (s *ItemService) UploadImage(ctx context.Context, id, fileName, contentType string, reader io.Reader, size int64) (*entity.Item, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find item: %w", err)
	}
	if s.minioClient == nil {
		return nil, fmt.Errorf("image storage not configured")
	}

	objectName := fmt.Sprintf("items/%s/%s%s", id, uuid.New().String()[:8], path.Ext(fileName))
	if _, err := s.minioClient.PutObject(ctx, s.bucketName, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	imageURL := fmt.Sprintf("/%s/%s", s.bucketName, objectName)
	if err := s.itemRepo.UpdateFields(ctx, id, map[string]interface{}{
		"image_url":  imageURL,
		"updated_at": time.Now(),
	}); err != nil {
		return nil, fmt.Errorf("save image url: %w", err)
	}
	invalidateItemCache(ctx, s.rdb, item.ProjectID)
	return s.itemRepo.FindByID(ctx, id)
}

func (s *ItemService) buildItem(ctx context.Context, userID string, req *CreateItemRequest) (*entity.Item, error) {
	if err := s.checkRoom(ctx, req.RoomID, req.ProjectID); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = entity.StatusWalkthrough
	}
	if !entity.ValidStatus(status) {
		return nil, fmt.Errorf("unknown status %q", status)
	}
	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	now := time.Now()
	return &entity.Item{
		ID:          newID(),
		ProjectID:   req.ProjectID,
		RoomID:      req.RoomID,
		Category:    req.Category,
		SubCategory: req.SubCategory,
		Name:        req.Name,
		Status:      status,
		Quantity:    quantity,

		VendorSKU:       req.VendorSKU,
		ActualCost:      req.ActualCost,
		Size:            req.Size,
		FinishColor:     req.FinishColor,
		ImageURL:        req.ImageURL,
		ProductURL:      req.ProductURL,
		EstShipDate:     req.EstShipDate,
		EstDeliveryDate: req.EstDeliveryDate,
		InstallDate:     req.InstallDate,
		ShipTo:          req.ShipTo,
		TrackingNumber:  req.TrackingNumber,
		Carrier:         req.Carrier,
		OrderDate:       req.OrderDate,
		Remarks:         req.Remarks,

		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// checkRoom enforces that the room exists and belongs to the same project as
// the item.
func (s *ItemService) checkRoom(ctx context.Context, roomID, projectID string) error {
	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		return fmt.Errorf("room not found: %w", err)
	}
	if room.ProjectID != projectID {
		return fmt.Errorf("room %s belongs to project %s, not %s", roomID, room.ProjectID, projectID)
	}
	return nil
}

func (s *ItemService) cachedItems(ctx context.Context, projectID string) ([]entity.Item, bool) {
	if s.rdb == nil {
		return nil, false
	}
	raw, err := s.rdb.Get(ctx, itemCacheKey(projectID)).Bytes()
	if err != nil {
		return nil, false
	}
	var items []entity.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

func (s *ItemService) cacheItems(ctx context.Context, projectID string, items []entity.Item) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	s.rdb.Set(ctx, itemCacheKey(projectID), raw, itemCacheTTL)
}

func itemCacheKey(projectID string) string {
	return "items:project:" + projectID
}

func invalidateItemCache(ctx context.Context, rdb *redis.Client, projectID string) {
	if rdb == nil {
		return
	}
	rdb.Del(ctx, itemCacheKey(projectID))
}

func filterStatuses(items []entity.Item, statuses []string) []entity.Item {
	if len(statuses) == 0 {
		return items
	}
	allowed := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		allowed[s] = true
	}
	out := make([]entity.Item, 0, len(items))
	for _, item := range items {
		if allowed[item.Status] {
			out = append(out, item)
		}
	}
	return out
}
