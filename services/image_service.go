package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/greentable/site-backend/models"
	"github.com/greentable/site-backend/realtime"
	"github.com/greentable/site-backend/repositories"
	"github.com/greentable/site-backend/storage"
)

// GalleryPageSize is the number of gallery images shown per admin page.
const GalleryPageSize = 12

// PlaceholderImageURL is the last resort of every fallback chain. Once it is
// reached, no further substitution is attempted.
const PlaceholderImageURL = "https://placehold.co/1920x1080"

// slotFallbacks maps each slot to the bundled asset served when the slot is
// unbound or its remote URL fails to load.
var slotFallbacks = map[models.ImageSlot]string{
	models.SlotHeroBackground:        "/static/fallbacks/hero_background.png",
	models.SlotAboutImage:            "/static/fallbacks/about_image.png",
	models.SlotContactBackground:     "/static/fallbacks/contact_background.png",
	models.SlotTournamentsBackground: "/static/fallbacks/tournaments_background.png",
	models.SlotMenuBackground:        "/static/fallbacks/menu_background.png",
	models.SlotGastronomyImage:       "/static/fallbacks/gastronomy_image.jpg",
}

// Notifier is the hub surface services need; satisfied by *realtime.Hub.
type Notifier interface {
	BroadcastToRoom(room string, eventType string, payload interface{})
}

type GalleryPage struct {
	Images     []string `json:"images"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	Total      int      `json:"total"`
	TotalPages int      `json:"total_pages"`
}

type ImageService interface {
	// List returns the current binding for every known slot, bound or not.
	List(ctx context.Context) ([]models.SiteImage, error)
	// Resolve returns the bound URL for a slot, or the head of its fallback
	// chain when the slot is unbound.
	Resolve(ctx context.Context, slot models.ImageSlot) (string, error)
	// FallbackChain returns the ordered URL candidates for a slot: the bound
	// URL if any, then the bundled asset, then the placeholder service.
	FallbackChain(ctx context.Context, slot models.ImageSlot) ([]string, error)
	// Save binds a URL to a slot. A nil URL clears the binding; the slot row
	// itself is never deleted.
	Save(ctx context.Context, slot models.ImageSlot, imageURL *string) (*models.SiteImage, error)
	Upload(ctx context.Context, filename, contentType string, file io.Reader) (*models.GalleryImage, error)
	// ListGallery returns deduplicated gallery URLs filtered by substring,
	// paginated GalleryPageSize at a time. Pages are 1-based.
	ListGallery(ctx context.Context, search string, page int) (*GalleryPage, error)
	// Delete removes a gallery image everywhere: any slot binding referencing
	// the URL is cleared first, then the stored rows and the blob itself go.
	Delete(ctx context.Context, imageURL string) error
}

type imageService struct {
	contentRepo repositories.SiteContentRepository
	uploader    storage.FileUploader
	notifier    Notifier
}

func NewImageService(contentRepo repositories.SiteContentRepository, uploader storage.FileUploader, notifier Notifier) ImageService {
	return &imageService{
		contentRepo: contentRepo,
		uploader:    uploader,
		notifier:    notifier,
	}
}

func (s *imageService) List(ctx context.Context) ([]models.SiteImage, error) {
	rows, err := s.contentRepo.ListByType(ctx, repositories.ContentTypeSiteImage)
	if err != nil {
		return nil, fmt.Errorf("failed to list site image bindings: %w", err)
	}

	bySlot := make(map[models.ImageSlot]repositories.ContentRow, len(rows))
	for _, row := range rows {
		if row.Title == nil {
			continue
		}
		slot := models.ImageSlot(*row.Title)
		if slot.Valid() {
			bySlot[slot] = row
		}
	}

	images := make([]models.SiteImage, 0, len(models.AllImageSlots))
	for _, slot := range models.AllImageSlots {
		img := models.SiteImage{Slot: slot}
		if row, ok := bySlot[slot]; ok {
			img.ID = row.ID
			img.URL = row.Content
			img.UpdatedAt = row.UpdatedAt
		}
		images = append(images, img)
	}
	return images, nil
}

func (s *imageService) Resolve(ctx context.Context, slot models.ImageSlot) (string, error) {
	chain, err := s.FallbackChain(ctx, slot)
	if err != nil {
		return "", err
	}
	return chain[0], nil
}

func (s *imageService) FallbackChain(ctx context.Context, slot models.ImageSlot) ([]string, error) {
	if !slot.Valid() {
		return nil, ErrUnknownImageSlot
	}

	chain := make([]string, 0, 3)
	row, err := s.contentRepo.GetByTypeAndTitle(ctx, repositories.ContentTypeSiteImage, string(slot))
	if err != nil && !errors.Is(err, repositories.ErrContentNotFound) {
		return nil, fmt.Errorf("failed to load binding for slot %s: %w", slot, err)
	}
	if row != nil && row.Content != nil && *row.Content != "" {
		chain = append(chain, *row.Content)
	}
	chain = append(chain, slotFallbacks[slot], PlaceholderImageURL)
	return chain, nil
}

// NextFallback returns the substitute to try after a candidate URL failed to
// load. It returns false once the placeholder itself failed: the chain ends
// there.
func NextFallback(slot models.ImageSlot, failedURL string) (string, bool) {
	if !slot.Valid() || failedURL == PlaceholderImageURL {
		return "", false
	}
	if failedURL == slotFallbacks[slot] {
		return PlaceholderImageURL, true
	}
	return slotFallbacks[slot], true
}

func (s *imageService) Save(ctx context.Context, slot models.ImageSlot, imageURL *string) (*models.SiteImage, error) {
	if !slot.Valid() {
		return nil, ErrUnknownImageSlot
	}
	if imageURL != nil && !strings.HasPrefix(*imageURL, "http") {
		return nil, ErrInvalidImageURL
	}

	row, err := s.contentRepo.Upsert(ctx, repositories.ContentTypeSiteImage, string(slot), imageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to save binding for slot %s: %w", slot, err)
	}

	img := &models.SiteImage{
		ID:        row.ID,
		Slot:      slot,
		URL:       row.Content,
		UpdatedAt: row.UpdatedAt,
	}

	if s.notifier != nil {
		s.notifier.BroadcastToRoom(realtime.RoomImages, realtime.EventImageUpdated, img)
	}
	return img, nil
}

func (s *imageService) Upload(ctx context.Context, filename, contentType string, file io.Reader) (*models.GalleryImage, error) {
	if file == nil {
		return nil, ErrImageFileRequired
	}

	ext := strings.ToLower(path.Ext(filename))
	key := "gallery/" + uuid.NewString() + ext

	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload gallery image: %w", err)
	}

	title := filename
	row, err := s.contentRepo.Insert(ctx, repositories.ContentTypeGalleryImage, &title, &result.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to record gallery image: %w", err)
	}

	return &models.GalleryImage{
		ID:        row.ID,
		URL:       result.Location,
		CreatedAt: row.CreatedAt,
	}, nil
}

func (s *imageService) ListGallery(ctx context.Context, search string, page int) (*GalleryPage, error) {
	galleryRows, err := s.contentRepo.ListByType(ctx, repositories.ContentTypeGalleryImage)
	if err != nil {
		return nil, fmt.Errorf("failed to list gallery images: %w", err)
	}
	bindingRows, err := s.contentRepo.ListByType(ctx, repositories.ContentTypeSiteImage)
	if err != nil {
		return nil, fmt.Errorf("failed to list site image bindings: %w", err)
	}

	// Bound URLs show up in the gallery picker too, deduplicated by URL.
	seen := make(map[string]bool)
	urls := make([]string, 0, len(galleryRows))
	for _, row := range append(galleryRows, bindingRows...) {
		if row.Content == nil {
			continue
		}
		u := *row.Content
		if !strings.HasPrefix(u, "http") || seen[u] {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
	}
	sort.Strings(urls)

	if search != "" {
		needle := strings.ToLower(search)
		filtered := urls[:0]
		for _, u := range urls {
			if strings.Contains(strings.ToLower(u), needle) {
				filtered = append(filtered, u)
			}
		}
		urls = filtered
	}

	total := len(urls)
	totalPages := (total + GalleryPageSize - 1) / GalleryPageSize
	if page < 1 {
		page = 1
	}

	start := (page - 1) * GalleryPageSize
	if start > total {
		start = total
	}
	end := start + GalleryPageSize
	if end > total {
		end = total
	}

	return &GalleryPage{
		Images:     urls[start:end],
		Page:       page,
		PageSize:   GalleryPageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func (s *imageService) Delete(ctx context.Context, imageURL string) error {
	cleanURL := stripQuery(imageURL)
	if cleanURL == "" {
		return ErrImageNotFound
	}

	// Clear slot bindings first so no section keeps pointing at a dead blob.
	cleared, err := s.contentRepo.ClearContentByValue(ctx, repositories.ContentTypeSiteImage, cleanURL)
	if err != nil {
		return fmt.Errorf("failed to clear slot bindings for %s: %w", cleanURL, err)
	}

	deleted, err := s.contentRepo.DeleteByTypeAndContent(ctx, repositories.ContentTypeGalleryImage, cleanURL)
	if err != nil {
		return fmt.Errorf("failed to delete gallery rows for %s: %w", cleanURL, err)
	}

	key, inBucket := s.uploader.KeyFromPublicURL(cleanURL)
	if inBucket {
		if err := s.uploader.Delete(ctx, key); err != nil {
			return fmt.Errorf("failed to delete blob for %s: %w", cleanURL, err)
		}
	}

	if cleared == 0 && deleted == 0 && !inBucket {
		return ErrImageNotFound
	}

	if s.notifier != nil {
		s.notifier.BroadcastToRoom(realtime.RoomImages, realtime.EventImageUpdated, map[string]string{"deleted": cleanURL})
	}
	return nil
}

func stripQuery(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return strings.TrimSpace(rawURL)
	}
	parsed.RawQuery = ""
	parsed.Fragment = ""
	return parsed.String()
}
