package entity

import (
	"regexp"
	"strings"
	"time"
)

const PlatformPC = "PC"

type SystemRequirements struct {
	OS        string `json:"os" firestore:"os"`
	Processor string `json:"processor" firestore:"processor"`
	Memory    string `json:"memory" firestore:"memory"`
	Graphics  string `json:"graphics" firestore:"graphics"`
	Storage   string `json:"storage" firestore:"storage"`
}

type Game struct {
	ID                 string              `json:"id" firestore:"-"`
	Slug               string              `json:"slug" firestore:"slug"`
	Title              string              `json:"title" firestore:"title"`
	Platform           string              `json:"platform" firestore:"platform"`
	ShortDescription   string              `json:"short_description" firestore:"shortDescription"`
	Description        string              `json:"description" firestore:"description"`
	Price              float64             `json:"price" firestore:"price"`
	ImageURL           string              `json:"image_url" firestore:"imageUrl"`
	BannerURL          string              `json:"banner_url" firestore:"bannerUrl"`
	Tags               []string            `json:"tags" firestore:"tags"`
	Rating             *float64            `json:"rating,omitempty" firestore:"rating,omitempty"`
	SystemRequirements *SystemRequirements `json:"system_requirements,omitempty" firestore:"systemRequirements,omitempty"`
	CreatedAt          time.Time           `json:"created_at" firestore:"createdAt,omitempty"`
	UpdatedAt          time.Time           `json:"updated_at" firestore:"updatedAt,omitempty"`
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and collapses every run of non alphanumerics into a
// single dash: "Baldur's Gate 3" becomes "baldur-s-gate-3".
func Slugify(s string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	return strings.Trim(slug, "-")
}

// Option lists offered by the admin game form.
var (
	OSOptions        = []string{"Windows 10 64-bit", "Windows 11 64-bit", "Windows 10/11 64-bit"}
	ProcessorOptions = []string{"Intel Core i5-8400 / AMD Ryzen 5 2600", "Intel Core i7-8700K / AMD Ryzen 7 3700X", "Intel Core i9-10900K / AMD Ryzen 9 5900X"}
	MemoryOptions    = []string{"8 GB RAM", "12 GB RAM", "16 GB RAM", "32 GB RAM"}
	GraphicsOptions  = []string{"NVIDIA GTX 1060 6GB / AMD RX 580", "NVIDIA RTX 2070 / AMD RX 5700 XT", "NVIDIA RTX 3080 / AMD RX 6800 XT"}
	StorageOptions   = []string{"50 GB available space", "100 GB available space", "150 GB SSD space"}
)
