package domain

const (
	RoleAdmin  = "ADMIN"
	RoleEditor = "EDITOR"
)

const (
	DonationPending = "PENDING"
	DonationSuccess = "SUCCESS"
	DonationFailed  = "FAILED"
)

const (
	MethodCard = "CARD"
	MethodBank = "BANK"
)

const (
	IntakeNew      = "NEW"
	IntakeReviewed = "REVIEWED"
)

// Cloudinary upload folders per content type.
const (
	FolderArticles = "Markaz/articles"
	FolderAudio    = "Markaz/audio"
	FolderPhotos   = "Markaz/photos"
	FolderVideos   = "Markaz/videos"
	FolderEbooks   = "Markaz/ebooks"
)
