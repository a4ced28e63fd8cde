package cinemamodel

type MovieStatus string

const (
	MovieComingSoon MovieStatus = "COMING_SOON"
	MovieNowShowing MovieStatus = "NOW_SHOWING"
	MovieEnded      MovieStatus = "ENDED"
)

// AgeRating is the local film classification (P, C13, C16, C18).
type AgeRating string

type MovieResponse struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	OriginalTitle *string         `json:"originalTitle,omitempty"`
	Description   *string         `json:"description,omitempty"`
	Duration      int             `json:"duration"` // minutes
	ReleaseDate   string          `json:"releaseDate"`
	EndDate       *string         `json:"endDate,omitempty"`
	Director      *string         `json:"director,omitempty"`
	CastMembers   *string         `json:"castMembers,omitempty"`
	Language      *string         `json:"language,omitempty"`
	Country       *string         `json:"country,omitempty"`
	Rating        AgeRating       `json:"rating"`
	TrailerURL    *string         `json:"trailerUrl,omitempty"`
	PosterURL     *string         `json:"posterUrl,omitempty"`
	BackdropURL   *string         `json:"backdropUrl,omitempty"`
	Status        MovieStatus     `json:"status"`
	Genres        []GenreResponse `json:"genres"`
	AverageRating *float64        `json:"averageRating,omitempty"`
	TotalReviews  *int            `json:"totalReviews,omitempty"`
	CreatedAt     string          `json:"createdAt"`
	UpdatedAt     string          `json:"updatedAt"`
}

type CreateMovieRequest struct {
	Title         string       `json:"title"`
	OriginalTitle *string      `json:"originalTitle,omitempty"`
	Description   *string      `json:"description,omitempty"`
	Duration      int          `json:"duration"`
	ReleaseDate   string       `json:"releaseDate"`
	EndDate       *string      `json:"endDate,omitempty"`
	Director      *string      `json:"director,omitempty"`
	CastMembers   *string      `json:"castMembers,omitempty"`
	Language      *string      `json:"language,omitempty"`
	Country       *string      `json:"country,omitempty"`
	Rating        AgeRating    `json:"rating"`
	TrailerURL    *string      `json:"trailerUrl,omitempty"`
	PosterURL     *string      `json:"posterUrl,omitempty"`
	BackdropURL   *string      `json:"backdropUrl,omitempty"`
	Status        *MovieStatus `json:"status,omitempty"`
	GenreIDs      []int64      `json:"genreIds,omitempty"`
}

type UpdateMovieRequest struct {
	Title         *string      `json:"title,omitempty"`
	OriginalTitle *string      `json:"originalTitle,omitempty"`
	Description   *string      `json:"description,omitempty"`
	Duration      *int         `json:"duration,omitempty"`
	ReleaseDate   *string      `json:"releaseDate,omitempty"`
	EndDate       *string      `json:"endDate,omitempty"`
	Director      *string      `json:"director,omitempty"`
	CastMembers   *string      `json:"castMembers,omitempty"`
	Language      *string      `json:"language,omitempty"`
	Country       *string      `json:"country,omitempty"`
	Rating        *AgeRating   `json:"rating,omitempty"`
	TrailerURL    *string      `json:"trailerUrl,omitempty"`
	PosterURL     *string      `json:"posterUrl,omitempty"`
	BackdropURL   *string      `json:"backdropUrl,omitempty"`
	Status        *MovieStatus `json:"status,omitempty"`
	GenreIDs      []int64      `json:"genreIds,omitempty"`
}

type MovieStatusRequest struct {
	Status MovieStatus `json:"status"`
}

type GenreResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type CreateGenreRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}
