package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/greentable/site-backend/services"
)

type ImageHandler struct {
	imageService services.ImageService
}

func NewImageHandler(is services.ImageService) *ImageHandler {
	return &ImageHandler{imageService: is}
}

// ListSiteImages returns the binding for every slot, bound or not.
func (h *ImageHandler) ListSiteImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.imageService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"site_images": images}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetSiteImage resolves one slot and also returns its full fallback chain so
// the client knows what to try next on a load error.
func (h *ImageHandler) GetSiteImage(w http.ResponseWriter, r *http.Request) {
	slot, err := getSlotFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	chain, err := h.imageService.FallbackChain(r.Context(), slot)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"slot":      slot,
		"url":       chain[0],
		"fallbacks": chain[1:],
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SaveSiteImage binds (or, with a null url, clears) a slot.
func (h *ImageHandler) SaveSiteImage(w http.ResponseWriter, r *http.Request) {
	slot, err := getSlotFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		ImageURL *string `json:"image_url"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	img, err := h.imageService.Save(r.Context(), slot, input.ImageURL)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"site_image": img}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListGallery serves the admin picker: deduplicated, searchable, paginated.
func (h *ImageHandler) ListGallery(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		parsed, err := strconv.Atoi(pageStr)
		if err != nil || parsed < 1 {
			badRequestResponse(w, r, fmt.Errorf("invalid page parameter: %q", pageStr))
			return
		}
		page = parsed
	}

	galleryPage, err := h.imageService.ListGallery(r.Context(), search, page)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, galleryPage, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ImageHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to get image file from form: %w", err))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		badRequestResponse(w, r, errors.New("content-type header is required for image"))
		return
	}

	img, err := h.imageService.Upload(r.Context(), header.Filename, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"image": img}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ImageHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ImageURL string `json:"image_url"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.ImageURL == "" {
		badRequestResponse(w, r, errors.New("image_url is required"))
		return
	}

	if err := h.imageService.Delete(r.Context(), input.ImageURL); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
