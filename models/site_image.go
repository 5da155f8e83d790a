package models

import "time"

// ImageSlot identifies one of the fixed image placements on the public site.
// The set is closed; bindings for unknown slots are rejected.
type ImageSlot string

const (
	SlotHeroBackground        ImageSlot = "hero_background"
	SlotAboutImage            ImageSlot = "about_image"
	SlotContactBackground     ImageSlot = "contact_background"
	SlotTournamentsBackground ImageSlot = "tournaments_background"
	SlotMenuBackground        ImageSlot = "menu_background"
	SlotGastronomyImage       ImageSlot = "gastronomy_image"
)

// AllImageSlots lists every slot in display order.
var AllImageSlots = []ImageSlot{
	SlotHeroBackground,
	SlotAboutImage,
	SlotContactBackground,
	SlotTournamentsBackground,
	SlotMenuBackground,
	SlotGastronomyImage,
}

func (s ImageSlot) Valid() bool {
	for _, known := range AllImageSlots {
		if s == known {
			return true
		}
	}
	return false
}

// SiteImage is the current binding of a slot to an image URL. URL is nil when
// the slot is unbound and the site falls back to its bundled asset.
type SiteImage struct {
	ID        int       `json:"id,omitempty"`
	Slot      ImageSlot `json:"slot"`
	URL       *string   `json:"url"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// GalleryImage is an uploaded image available to bind to any slot.
type GalleryImage struct {
	ID        int       `json:"id"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}
