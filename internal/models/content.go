package models

import (
	"time"

	"gorm.io/gorm"
)

type Article struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	Body      string         `gorm:"type:longtext" json:"body"`
	Category  string         `gorm:"size:100;index" json:"category"`
	CoverURL  string         `gorm:"size:512" json:"cover_url"`
	Author    string         `gorm:"size:255" json:"author"`
	Published bool           `gorm:"default:false;index" json:"published"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Series groups audio tracks. Tracks link back via the series TITLE string,
// not the id; renaming a series must rewrite every linked track.
type Series struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:255;not null;uniqueIndex" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Category    string         `gorm:"size:100;index" json:"category"`
	CoverURL    string         `gorm:"size:512" json:"cover_url"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

type AudioTrack struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Series      string         `gorm:"size:255;index" json:"series"` // parent series title, denormalized
	AudioURL    string         `gorm:"size:512;not null" json:"audio_url"`
	DurationSec int            `json:"duration_sec"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

type Album struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:255;not null;uniqueIndex" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	CoverURL    string         `gorm:"size:512" json:"cover_url"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

type Photo struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Album        string         `gorm:"size:255;index" json:"album"` // parent album title, denormalized
	Caption      string         `gorm:"size:255" json:"caption"`
	ImageURL     string         `gorm:"size:512;not null" json:"image_url"`
	ThumbnailURL string         `gorm:"size:512" json:"thumbnail_url"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

type Playlist struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:255;not null;uniqueIndex" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Category    string         `gorm:"size:100;index" json:"category"`
	CoverURL    string         `gorm:"size:512" json:"cover_url"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

type Video struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Title        string         `gorm:"size:255;not null" json:"title"`
	Playlist     string         `gorm:"size:255;index" json:"playlist"` // parent playlist title, denormalized
	VideoURL     string         `gorm:"size:512;not null" json:"video_url"`
	ThumbnailURL string         `gorm:"size:512" json:"thumbnail_url"`
	DurationSec  int            `json:"duration_sec"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

type Ebook struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Author      string         `gorm:"size:255" json:"author"`
	Description string         `gorm:"type:text" json:"description"`
	FileURL     string         `gorm:"size:512;not null" json:"file_url"`
	CoverURL    string         `gorm:"size:512" json:"cover_url"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
