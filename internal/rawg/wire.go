package rawg

import "github.com/ryanm101/biblioteca/internal/catalog"

// Wire shapes of the upstream JSON.

type named struct {
	Name string `json:"name"`
}

type platformRef struct {
	Platform named `json:"platform"`
}

type imageRef struct {
	Image string `json:"image"`
}

type gameList struct {
	Count   int        `json:"count"`
	Next    *string    `json:"next"`
	Results []gameItem `json:"results"`
}

type gameItem struct {
	ID               int           `json:"id"`
	Slug             string        `json:"slug"`
	Name             string        `json:"name"`
	BackgroundImage  string        `json:"background_image"`
	Metacritic       *int          `json:"metacritic"`
	Released         string        `json:"released"`
	Rating           float64       `json:"rating"`
	Genres           []named       `json:"genres"`
	ParentPlatforms  []platformRef `json:"parent_platforms"`
	ShortScreenshots []imageRef    `json:"short_screenshots"`
}

type gameDetail struct {
	gameItem
	Description    string  `json:"description"`
	DescriptionRaw string  `json:"description_raw"`
	Developers     []named `json:"developers"`
	Publishers     []named `json:"publishers"`
	ESRBRating     *named  `json:"esrb_rating"`
	Playtime       int     `json:"playtime"`
	Website        string  `json:"website"`
}

func (g gameItem) summary() catalog.GameSummary {
	s := catalog.GameSummary{
		ID:       g.ID,
		Slug:     g.Slug,
		Name:     g.Name,
		Image:    g.BackgroundImage,
		Score:    g.Metacritic,
		Released: g.Released,
	}
	for _, genre := range g.Genres {
		s.Genres = append(s.Genres, genre.Name)
	}
	for _, p := range g.ParentPlatforms {
		s.Platforms = append(s.Platforms, p.Platform.Name)
	}
	return s
}

func (g gameDetail) detail() catalog.GameDetail {
	d := catalog.GameDetail{
		GameSummary: g.summary(),
		Description: g.Description,
		Developers:  names(g.Developers),
		Publishers:  names(g.Publishers),
		Playtime:    g.Playtime,
		Screenshots: imageURLs(g.ShortScreenshots),
		UserRating:  g.Rating,
		Website:     g.Website,
	}
	if d.Description == "" {
		d.Description = g.DescriptionRaw
	}
	if g.ESRBRating != nil {
		d.ContentRating = g.ESRBRating.Name
	}
	return d
}

func names(in []named) []string {
	out := make([]string, 0, len(in))
	for _, n := range in {
		out = append(out, n.Name)
	}
	return out
}

func imageURLs(in []imageRef) []string {
	out := make([]string, 0, len(in))
	for _, r := range in {
		if r.Image != "" {
			out = append(out, r.Image)
		}
	}
	return out
}
