package repository

import (
	"errors"
	"fmt"
	"testing"

	"markaz/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Series{},
		&models.AudioTrack{},
		&models.Album{},
		&models.Photo{},
		&models.Playlist{},
		&models.Video{},
	))
	return db
}

func TestSeriesRenamePropagatesToTracks(t *testing.T) {
	db := openTestDB(t)
	seriesRepo := NewSeriesRepository(db)
	audioRepo := NewAudioRepository(db)

	s := &models.Series{Title: "Tafsir Vol 1"}
	require.NoError(t, seriesRepo.Create(s))
	other := &models.Series{Title: "Fiqh Basics"}
	require.NoError(t, seriesRepo.Create(other))

	for i := 0; i < 12; i++ {
		require.NoError(t, audioRepo.Create(&models.AudioTrack{
			Title:    fmt.Sprintf("Lesson %d", i+1),
			Series:   "Tafsir Vol 1",
			AudioURL: "https://cdn.example.org/a.mp3",
		}))
	}
	require.NoError(t, audioRepo.Create(&models.AudioTrack{
		Title:    "Intro",
		Series:   "Fiqh Basics",
		AudioURL: "https://cdn.example.org/b.mp3",
	}))

	updated, relinked, err := seriesRepo.RenameAndPropagate(s.ID, SeriesUpdate{Title: "Tafsir Volume One"})
	require.NoError(t, err)
	assert.Equal(t, "Tafsir Volume One", updated.Title)
	assert.EqualValues(t, 12, relinked)

	newTracks, err := audioRepo.ListBySeries("Tafsir Volume One")
	require.NoError(t, err)
	assert.Len(t, newTracks, 12)

	oldTracks, err := audioRepo.ListBySeries("Tafsir Vol 1")
	require.NoError(t, err)
	assert.Empty(t, oldTracks)

	// the track linked to the other series is untouched
	otherTracks, err := audioRepo.ListBySeries("Fiqh Basics")
	require.NoError(t, err)
	assert.Len(t, otherTracks, 1)
}

func TestSeriesRenameSameTitleTouchesNoChildren(t *testing.T) {
	db := openTestDB(t)
	seriesRepo := NewSeriesRepository(db)
	audioRepo := NewAudioRepository(db)

	s := &models.Series{Title: "Seerah", Description: "old"}
	require.NoError(t, seriesRepo.Create(s))
	require.NoError(t, audioRepo.Create(&models.AudioTrack{Title: "Ep 1", Series: "Seerah", AudioURL: "u"}))

	desc := "updated description"
	updated, relinked, err := seriesRepo.RenameAndPropagate(s.ID, SeriesUpdate{Title: "Seerah", Description: &desc})
	require.NoError(t, err)
	assert.EqualValues(t, 0, relinked)
	assert.Equal(t, "updated description", updated.Description)
}

func TestSeriesRenameRejectsEmptyTitle(t *testing.T) {
	db := openTestDB(t)
	seriesRepo := NewSeriesRepository(db)

	s := &models.Series{Title: "Aqeedah"}
	require.NoError(t, seriesRepo.Create(s))

	_, _, err := seriesRepo.RenameAndPropagate(s.ID, SeriesUpdate{Title: "   "})
	assert.ErrorIs(t, err, ErrEmptyTitle)

	reloaded, err := seriesRepo.GetByID(s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Aqeedah", reloaded.Title)
}

func TestSeriesRenameMissingParent(t *testing.T) {
	db := openTestDB(t)
	seriesRepo := NewSeriesRepository(db)

	_, _, err := seriesRepo.RenameAndPropagate(9999, SeriesUpdate{Title: "Anything"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSeriesRenameChunksLargeChildSets(t *testing.T) {
	db := openTestDB(t)
	seriesRepo := NewSeriesRepository(db)

	s := &models.Series{Title: "Ramadan Nights"}
	require.NoError(t, seriesRepo.Create(s))

	// more children than one chunk can address
	tracks := make([]models.AudioTrack, titleChunkSize+150)
	for i := range tracks {
		tracks[i] = models.AudioTrack{
			Title:    fmt.Sprintf("Night %d", i+1),
			Series:   "Ramadan Nights",
			AudioURL: "u",
		}
	}
	require.NoError(t, db.CreateInBatches(&tracks, 200).Error)

	_, relinked, err := seriesRepo.RenameAndPropagate(s.ID, SeriesUpdate{Title: "Ramadan Nights 1445"})
	require.NoError(t, err)
	assert.EqualValues(t, titleChunkSize+150, relinked)

	var stale int64
	require.NoError(t, db.Model(&models.AudioTrack{}).Where("series = ?", "Ramadan Nights").Count(&stale).Error)
	assert.Zero(t, stale)
}

// A failed chunk must abort the whole rename: no new parent title, no
// half-relinked children.
func TestSeriesRenameRollsBackOnChunkFailure(t *testing.T) {
	db := openTestDB(t)
	seriesRepo := NewSeriesRepository(db)

	s := &models.Series{Title: "Tafsir Vol 1"}
	require.NoError(t, seriesRepo.Create(s))

	total := titleChunkSize + 50
	tracks := make([]models.AudioTrack, total)
	for i := range tracks {
		tracks[i] = models.AudioTrack{
			Title:    fmt.Sprintf("Lesson %d", i+1),
			Series:   "Tafsir Vol 1",
			AudioURL: "u",
		}
	}
	require.NoError(t, db.CreateInBatches(&tracks, 200).Error)

	// fail the second child UPDATE, after the first chunk already ran
	var childUpdates int
	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("fail_second_child_update", func(tx *gorm.DB) {
		if tx.Statement.Table != "audio_tracks" {
			return
		}
		childUpdates++
		if childUpdates == 2 {
			tx.AddError(errors.New("simulated write failure"))
		}
	}))

	_, _, err := seriesRepo.RenameAndPropagate(s.ID, SeriesUpdate{Title: "Tafsir Volume One"})
	require.Error(t, err)

	reloaded, err := seriesRepo.GetByID(s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tafsir Vol 1", reloaded.Title)

	var stale int64
	require.NoError(t, db.Model(&models.AudioTrack{}).Where("series = ?", "Tafsir Vol 1").Count(&stale).Error)
	assert.EqualValues(t, total, stale)
}

func TestAlbumRenamePropagatesToPhotos(t *testing.T) {
	db := openTestDB(t)
	albumRepo := NewAlbumRepository(db)
	photoRepo := NewPhotoRepository(db)

	a := &models.Album{Title: "Eid 2024"}
	require.NoError(t, albumRepo.Create(a))
	for i := 0; i < 5; i++ {
		require.NoError(t, photoRepo.Create(&models.Photo{Album: "Eid 2024", ImageURL: "u"}))
	}

	_, relinked, err := albumRepo.RenameAndPropagate(a.ID, AlbumUpdate{Title: "Eid al-Fitr 2024"})
	require.NoError(t, err)
	assert.EqualValues(t, 5, relinked)

	photos, err := photoRepo.ListByAlbum("Eid al-Fitr 2024")
	require.NoError(t, err)
	assert.Len(t, photos, 5)
}

func TestPlaylistRenamePropagatesToVideos(t *testing.T) {
	db := openTestDB(t)
	playlistRepo := NewPlaylistRepository(db)
	videoRepo := NewVideoRepository(db)

	p := &models.Playlist{Title: "Friday Sermons"}
	require.NoError(t, playlistRepo.Create(p))
	require.NoError(t, videoRepo.Create(&models.Video{Title: "Week 1", Playlist: "Friday Sermons", VideoURL: "u"}))
	require.NoError(t, videoRepo.Create(&models.Video{Title: "Week 2", Playlist: "Friday Sermons", VideoURL: "u"}))

	_, relinked, err := playlistRepo.RenameAndPropagate(p.ID, PlaylistUpdate{Title: "Jumu'ah Sermons"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, relinked)

	videos, err := videoRepo.ListByPlaylist("Jumu'ah Sermons")
	require.NoError(t, err)
	assert.Len(t, videos, 2)
}

// The link is an exact string match: a trailing-space mismatch at creation
// time leaves the child behind on rename.
func TestRenameIsExactStringMatch(t *testing.T) {
	db := openTestDB(t)
	seriesRepo := NewSeriesRepository(db)
	audioRepo := NewAudioRepository(db)

	s := &models.Series{Title: "Hadith"}
	require.NoError(t, seriesRepo.Create(s))
	require.NoError(t, audioRepo.Create(&models.AudioTrack{Title: "Ep", Series: "Hadith ", AudioURL: "u"}))

	_, relinked, err := seriesRepo.RenameAndPropagate(s.ID, SeriesUpdate{Title: "Hadith Studies"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, relinked)
}
